package handlers

import (
	"context"
	"errors"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service statsApplicationService
}

type statsApplicationService interface {
	MembershipDistribution(ctx context.Context) (*models.MembershipStats, error)
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) MembershipStats(c *fiber.Ctx) error {
	stats, err := h.service.MembershipDistribution(c.Context())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"error": "Storage is unavailable, try again shortly"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch membership stats"})
	}

	return c.JSON(fiber.Map{"stats": stats})
}
