package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubCheckoutClient struct {
	order        *CheckoutOrder
	err          error
	lastCurrency string
}

func (c *stubCheckoutClient) CreateOrder(_ context.Context, _ string, amount float64, currency string) (*CheckoutOrder, error) {
	c.lastCurrency = currency
	if c.err != nil {
		return nil, c.err
	}
	order := *c.order
	order.Amount = amount
	order.Currency = currency
	return &order, nil
}

func (c *stubCheckoutClient) GetOrder(_ context.Context, _ string) (*CheckoutOrder, error) {
	return c.order, c.err
}

type stubPaymentStore struct {
	existing   *models.Payment
	lastCreate repository.CreatePaymentInput
	created    int
}

func (s *stubPaymentStore) Create(_ context.Context, input repository.CreatePaymentInput) (*models.Payment, error) {
	s.lastCreate = input
	s.created++
	return &models.Payment{
		ID:       1,
		MemberID: input.MemberID,
		OrderRef: input.OrderRef,
		Amount:   input.Amount,
		Currency: input.Currency,
		Status:   input.Status,
	}, nil
}

func (s *stubPaymentStore) GetByOrderRef(_ context.Context, _ string) (*models.Payment, error) {
	if s.existing == nil {
		return nil, pgx.ErrNoRows
	}
	return s.existing, nil
}

func (s *stubPaymentStore) ListByMemberID(_ context.Context, _ int64) ([]models.Payment, error) {
	return nil, nil
}

func TestPaymentServiceRequiresConfiguredProvider(t *testing.T) {
	service := &PaymentService{paymentRepo: &stubPaymentStore{}}

	if _, err := service.CreateOrder(context.Background(), 7, 49.90, "USD"); err != ErrCheckoutUnavailable {
		t.Fatalf("CreateOrder: expected ErrCheckoutUnavailable, got %v", err)
	}
	if _, err := service.RecordPayment(context.Background(), 7, "ord-1"); err != ErrCheckoutUnavailable {
		t.Fatalf("RecordPayment: expected ErrCheckoutUnavailable, got %v", err)
	}
}

func TestPaymentServiceCreateOrderDefaultsCurrency(t *testing.T) {
	checkout := &stubCheckoutClient{order: &CheckoutOrder{OrderRef: "ord-1", Status: "created"}}
	service := &PaymentService{checkout: checkout, paymentRepo: &stubPaymentStore{}}

	order, err := service.CreateOrder(context.Background(), 7, 49.90, "  ")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if checkout.lastCurrency != "USD" || order.Currency != "USD" {
		t.Fatalf("expected USD default, got %q", checkout.lastCurrency)
	}
}

func TestPaymentServiceRecordPaymentRejectsIncompleteOrder(t *testing.T) {
	checkout := &stubCheckoutClient{order: &CheckoutOrder{OrderRef: "ord-1", Status: "created", Amount: 49.90, Currency: "USD"}}
	store := &stubPaymentStore{}
	service := &PaymentService{checkout: checkout, paymentRepo: store}

	if _, err := service.RecordPayment(context.Background(), 7, "ord-1"); err != ErrOrderIncomplete {
		t.Fatalf("expected ErrOrderIncomplete, got %v", err)
	}
	if store.created != 0 {
		t.Fatalf("expected no payment persisted, got %d", store.created)
	}
}

func TestPaymentServiceRecordPaymentPersistsProviderOutcome(t *testing.T) {
	checkout := &stubCheckoutClient{order: &CheckoutOrder{OrderRef: "ord-1", Status: "COMPLETED", Amount: 49.90, Currency: "EUR"}}
	store := &stubPaymentStore{}
	service := &PaymentService{checkout: checkout, paymentRepo: store}

	payment, err := service.RecordPayment(context.Background(), 7, "ord-1")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.Status != "completed" || payment.Amount != 49.90 || payment.Currency != "EUR" {
		t.Fatalf("expected provider outcome persisted, got %+v", payment)
	}
	if store.lastCreate.MemberID != 7 || store.lastCreate.OrderRef != "ord-1" {
		t.Fatalf("unexpected create input %+v", store.lastCreate)
	}
}

func TestPaymentServiceRecordPaymentIsIdempotent(t *testing.T) {
	existing := &models.Payment{ID: 9, MemberID: 7, OrderRef: "ord-1", Status: "completed"}
	checkout := &stubCheckoutClient{order: &CheckoutOrder{OrderRef: "ord-1", Status: "completed"}}
	store := &stubPaymentStore{existing: existing}
	service := &PaymentService{checkout: checkout, paymentRepo: store}

	payment, err := service.RecordPayment(context.Background(), 7, "ord-1")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.ID != existing.ID {
		t.Fatalf("expected existing payment returned, got %+v", payment)
	}
	if store.created != 0 {
		t.Fatalf("expected no duplicate insert, got %d", store.created)
	}
}

func TestHTTPCheckoutClientSendsBearerAuth(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_ref":"ord-1","status":"completed","amount":49.9,"currency":"USD"}`))
	}))
	defer server.Close()

	client := NewHTTPCheckoutClient(server.URL, "secret-key")
	order, err := client.GetOrder(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/v1/orders/ord-1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if order.OrderRef != "ord-1" || order.Status != "completed" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestHTTPCheckoutClientSurfacesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("provider down"))
	}))
	defer server.Close()

	client := NewHTTPCheckoutClient(server.URL, "secret-key")
	if _, err := client.GetOrder(context.Background(), "ord-1"); err == nil {
		t.Fatal("expected error from non-2xx response")
	}
}
