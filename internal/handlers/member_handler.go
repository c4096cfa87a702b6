package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type memberStore interface {
	Create(ctx context.Context, member *models.Member) error
	GetByUsername(ctx context.Context, username string) (*models.Member, error)
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	Update(ctx context.Context, id int64, input repository.UpdateMemberInput) (*models.Member, error)
}

type MemberHandler struct {
	memberRepo memberStore
}

func NewMemberHandler(memberRepo *repository.MemberRepository) *MemberHandler {
	return &MemberHandler{memberRepo: memberRepo}
}

type updateMemberRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	PhoneNumber    *string `json:"phone_number"`
	MembershipType *string `json:"membership_type"`
}

func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	memberID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || memberID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member id"})
	}

	if !canAccessMember(c, actorID, memberID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
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

// UpdateMember writes contact and tier fields only; credentials and the
// admin flag are not reachable from this route.
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	memberID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || memberID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member id"})
	}

	if !canAccessMember(c, actorID, memberID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req updateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FirstName == nil && req.LastName == nil && req.PhoneNumber == nil && req.MembershipType == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No updatable fields provided"})
	}
	if message := validateMemberUpdateRequest(req); message != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
	}

	input := repository.UpdateMemberInput{
		FirstName:   trimmedPtr(req.FirstName),
		LastName:    trimmedPtr(req.LastName),
		PhoneNumber: trimmedPtr(req.PhoneNumber),
	}
	if req.MembershipType != nil {
		trimmed := strings.TrimSpace(*req.MembershipType)
		input.MembershipType = &trimmed
	}

	member, err := h.memberRepo.Update(c.Context(), memberID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update member"})
	}

	return c.JSON(fiber.Map{"member": member})
}

func canAccessMember(c *fiber.Ctx, actorID, memberID int64) bool {
	if actorID == memberID {
		return true
	}
	role, ok := c.Locals("role").(string)
	return ok && role == "admin"
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
