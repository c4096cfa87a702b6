package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/elif-d/StudioFitBack/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type AuthHandler struct {
	memberRepo memberStore
	jwtSecret  string
}

func NewAuthHandler(memberRepo *repository.MemberRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		memberRepo: memberRepo,
		jwtSecret:  jwtSecret,
	}
}

type registerRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	BirthDate      string `json:"birth_date"`
	MembershipType string `json:"membership_type"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if message := validateRegisterRequest(req); message != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
	}

	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.BirthDate))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "birth_date must be a valid YYYY-MM-DD date"})
	}

	membershipType := strings.TrimSpace(req.MembershipType)
	if membershipType == "" {
		membershipType = "full"
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}

	member := &models.Member{
		Username:       req.Username,
		PasswordHash:   hashed,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		BirthDate:      birthDate,
		MembershipType: membershipType,
	}
	if err := h.memberRepo.Create(c.Context(), member); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Username already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create member"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(member.ID, 10), memberRole(member), h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":  token,
		"member": memberSummary(member),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}

	member, err := h.memberRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup member"})
	}

	if !utils.CheckPassword(req.Password, member.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid username or password"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(member.ID, 10), memberRole(member), h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"member": memberSummary(member),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	member, err := h.memberRepo.GetByID(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch member"})
	}

	return c.JSON(fiber.Map{"member": member})
}

func memberRole(member *models.Member) string {
	if member.IsAdmin {
		return "admin"
	}
	return "member"
}

func memberSummary(member *models.Member) fiber.Map {
	return fiber.Map{
		"id":              member.ID,
		"username":        member.Username,
		"first_name":      member.FirstName,
		"last_name":       member.LastName,
		"membership_type": member.MembershipType,
		"is_admin":        member.IsAdmin,
	}
}

// parseActorID reads the authenticated member id stored by the auth
// middleware.
func parseActorID(c *fiber.Ctx) (int64, error) {
	value, ok := c.Locals("member_id").(string)
	if !ok {
		return 0, errors.New("missing member id")
	}
	memberID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || memberID <= 0 {
		return 0, errors.New("invalid member id")
	}
	return memberID, nil
}
