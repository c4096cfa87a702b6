package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubPaymentService struct {
	createResult *services.CheckoutOrder
	createErr    error
	statusResult *services.CheckoutOrder
	statusErr    error
	recordResult *models.Payment
	recordErr    error
	listResult   []models.Payment
	listErr      error
	lastMemberID int64
	lastAmount   float64
	lastCurrency string
	lastOrderRef string
}

func (s *stubPaymentService) CreateOrder(_ context.Context, memberID int64, amount float64, currency string) (*services.CheckoutOrder, error) {
	s.lastMemberID = memberID
	s.lastAmount = amount
	s.lastCurrency = currency
	return s.createResult, s.createErr
}

func (s *stubPaymentService) GetOrderStatus(_ context.Context, orderRef string) (*services.CheckoutOrder, error) {
	s.lastOrderRef = orderRef
	return s.statusResult, s.statusErr
}

func (s *stubPaymentService) RecordPayment(_ context.Context, memberID int64, orderRef string) (*models.Payment, error) {
	s.lastMemberID = memberID
	s.lastOrderRef = orderRef
	return s.recordResult, s.recordErr
}

func (s *stubPaymentService) ListMemberPayments(_ context.Context, memberID int64) ([]models.Payment, error) {
	s.lastMemberID = memberID
	return s.listResult, s.listErr
}

func newPaymentTestApp(service *stubPaymentService) *fiber.App {
	handler := &PaymentHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("member_id", "42")
		c.Locals("role", "member")
		return c.Next()
	})
	app.Post("/api/v1/payments/orders", handler.CreateOrder)
	app.Get("/api/v1/payments/orders/:ref", handler.GetOrderStatus)
	app.Post("/api/v1/payments/orders/:ref/record", handler.RecordPayment)
	app.Get("/api/v1/payments", handler.ListPayments)
	return app
}

func TestCreateOrderPassesAmountAndCurrency(t *testing.T) {
	service := &stubPaymentService{
		createResult: &services.CheckoutOrder{OrderRef: "ord-1", Status: "created", Amount: 49.90, Currency: "USD"},
	}
	app := newPaymentTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", strings.NewReader(`{
		"amount": 49.90,
		"currency": "usd"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastMemberID != 42 || service.lastAmount != 49.90 || service.lastCurrency != "usd" {
		t.Fatalf("unexpected inputs member=%d amount=%.2f currency=%q",
			service.lastMemberID, service.lastAmount, service.lastCurrency)
	}
}

func TestRecordPaymentIncompleteOrder(t *testing.T) {
	app := newPaymentTestApp(&stubPaymentService{recordErr: services.ErrOrderIncomplete})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders/ord-1/record", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPaymentRoutesWhenCheckoutUnconfigured(t *testing.T) {
	app := newPaymentTestApp(&stubPaymentService{createErr: services.ErrCheckoutUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", strings.NewReader(`{"amount": 10}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestRecordPaymentForwardsOrderRef(t *testing.T) {
	service := &stubPaymentService{
		recordResult: &models.Payment{ID: 1, MemberID: 42, OrderRef: "ord-1", Status: "completed"},
	}
	app := newPaymentTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders/ord-1/record", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastOrderRef != "ord-1" || service.lastMemberID != 42 {
		t.Fatalf("unexpected inputs ref=%q member=%d", service.lastOrderRef, service.lastMemberID)
	}
}
