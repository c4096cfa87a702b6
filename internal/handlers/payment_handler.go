package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service paymentApplicationService
}

type paymentApplicationService interface {
	CreateOrder(ctx context.Context, memberID int64, amount float64, currency string) (*services.CheckoutOrder, error)
	GetOrderStatus(ctx context.Context, orderRef string) (*services.CheckoutOrder, error)
	RecordPayment(ctx context.Context, memberID int64, orderRef string) (*models.Payment, error)
	ListMemberPayments(ctx context.Context, memberID int64) ([]models.Payment, error)
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.service.CreateOrder(c.Context(), memberID, req.Amount, req.Currency)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}

func (h *PaymentHandler) GetOrderStatus(c *fiber.Ctx) error {
	orderRef := strings.TrimSpace(c.Params("ref"))
	if orderRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order reference"})
	}

	order, err := h.service.GetOrderStatus(c.Context(), orderRef)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.JSON(fiber.Map{"order": order})
}

func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	orderRef := strings.TrimSpace(c.Params("ref"))
	if orderRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order reference"})
	}

	payment, err := h.service.RecordPayment(c.Context(), memberID, orderRef)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	payments, err := h.service.ListMemberPayments(c.Context(), memberID)
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.JSON(fiber.Map{"payments": payments})
}

func mapPaymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOrderIncomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCheckoutUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Checkout is not available"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Checkout timed out, try again shortly"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payment request"})
	}
}
