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

type VideoHandler struct {
	service videoApplicationService
	access  featureGate
}

type videoApplicationService interface {
	ListVideos(ctx context.Context, memberID int64) ([]models.VideoDetail, error)
	ListLoved(ctx context.Context, memberID int64) ([]models.VideoDetail, error)
	CreateVideo(ctx context.Context, input services.CreateVideoInput) (*models.Video, error)
	DeleteVideo(ctx context.Context, videoID int64) error
	ToggleLove(ctx context.Context, videoID, memberID int64) (bool, int, error)
	SetLove(ctx context.Context, videoID, memberID int64, loved bool) (bool, int, error)
}

type featureGate interface {
	RequireFeature(ctx context.Context, memberID int64, feature string) error
}

func NewVideoHandler(service *services.VideoService, access *services.AccessService) *VideoHandler {
	return &VideoHandler{service: service, access: access}
}

type createVideoRequest struct {
	Title    string `json:"title"`
	MediaRef string `json:"media_ref"`
}

type setLoveRequest struct {
	Loved *bool `json:"loved"`
}

func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.access.RequireFeature(c.Context(), memberID, services.FeatureVideoLibrary); err != nil {
		return mapVideoError(c, err)
	}

	videos, err := h.service.ListVideos(c.Context(), memberID)
	if err != nil {
		return mapVideoError(c, err)
	}

	return c.JSON(fiber.Map{"videos": videos})
}

func (h *VideoHandler) ListLoved(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.access.RequireFeature(c.Context(), memberID, services.FeatureVideoLibrary); err != nil {
		return mapVideoError(c, err)
	}

	videos, err := h.service.ListLoved(c.Context(), memberID)
	if err != nil {
		return mapVideoError(c, err)
	}

	return c.JSON(fiber.Map{"videos": videos})
}

func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	var req createVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	video, err := h.service.CreateVideo(c.Context(), services.CreateVideoInput{
		Title:    req.Title,
		MediaRef: req.MediaRef,
	})
	if err != nil {
		return mapVideoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"video": video})
}

func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || videoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	if err := h.service.DeleteVideo(c.Context(), videoID); err != nil {
		return mapVideoError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Video deleted"})
}

func (h *VideoHandler) ToggleLove(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.access.RequireFeature(c.Context(), memberID, services.FeatureVideoLibrary); err != nil {
		return mapVideoError(c, err)
	}

	videoID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || videoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	loved, count, err := h.service.ToggleLove(c.Context(), videoID, memberID)
	if err != nil {
		return mapVideoError(c, err)
	}

	return c.JSON(fiber.Map{"loved": loved, "love_count": count})
}

// SetLove is the idempotent variant: the client states the target value, so
// retrying a timed-out request cannot flip state twice.
func (h *VideoHandler) SetLove(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.access.RequireFeature(c.Context(), memberID, services.FeatureVideoLibrary); err != nil {
		return mapVideoError(c, err)
	}

	videoID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || videoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	var req setLoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Loved == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "loved is required"})
	}

	loved, count, err := h.service.SetLove(c.Context(), videoID, memberID, *req.Loved)
	if err != nil {
		return mapVideoError(c, err)
	}

	return c.JSON(fiber.Map{"loved": loved, "love_count": count})
}

func mapVideoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrMembershipRequired):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": services.UpgradePrompt(services.FeatureVideoLibrary)})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage is unavailable, try again shortly"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process video request"})
	}
}
