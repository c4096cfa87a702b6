package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type AnnouncementHandler struct {
	service announcementApplicationService
}

type announcementApplicationService interface {
	Create(ctx context.Context, message string) (*models.Announcement, error)
	Get(ctx context.Context, announcementID int64) (*models.Announcement, error)
	List(ctx context.Context, offset, limit int) ([]models.Announcement, int, error)
	Update(ctx context.Context, announcementID int64, message string) (*models.Announcement, error)
	Delete(ctx context.Context, announcementID int64) error
}

func NewAnnouncementHandler(service *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type announcementRequest struct {
	Message string `json:"message"`
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	announcements, total, err := h.service.List(c.Context(), (page-1)*limit, limit)
	if err != nil {
		return mapAnnouncementError(c, err)
	}

	return c.JSON(fiber.Map{
		"announcements": announcements,
		"pagination":    buildPaginationMeta(page, limit, total),
	})
}

func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	announcementID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || announcementID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement id"})
	}

	announcement, err := h.service.Get(c.Context(), announcementID)
	if err != nil {
		return mapAnnouncementError(c, err)
	}

	return c.JSON(fiber.Map{"announcement": announcement})
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	announcement, err := h.service.Create(c.Context(), req.Message)
	if err != nil {
		return mapAnnouncementError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"announcement": announcement})
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	announcementID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || announcementID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement id"})
	}

	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	announcement, err := h.service.Update(c.Context(), announcementID, req.Message)
	if err != nil {
		return mapAnnouncementError(c, err)
	}

	return c.JSON(fiber.Map{"announcement": announcement})
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	announcementID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || announcementID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement id"})
	}

	if err := h.service.Delete(c.Context(), announcementID); err != nil {
		return mapAnnouncementError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}

func mapAnnouncementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage is unavailable, try again shortly"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process announcement request"})
	}
}
