package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCheckoutUnavailable = errors.New("checkout provider is not configured")
	ErrOrderIncomplete     = errors.New("order has not completed")
)

type paymentStore interface {
	Create(ctx context.Context, input repository.CreatePaymentInput) (*models.Payment, error)
	GetByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error)
	ListByMemberID(ctx context.Context, memberID int64) ([]models.Payment, error)
}

type PaymentService struct {
	checkout    CheckoutClient
	paymentRepo paymentStore
	timeout     time.Duration
}

func NewPaymentService(checkout CheckoutClient, paymentRepo *repository.PaymentRepository, timeout time.Duration) *PaymentService {
	return &PaymentService{
		checkout:    checkout,
		paymentRepo: paymentRepo,
		timeout:     timeout,
	}
}

func (s *PaymentService) CreateOrder(ctx context.Context, memberID int64, amount float64, currency string) (*CheckoutOrder, error) {
	if s.checkout == nil {
		return nil, ErrCheckoutUnavailable
	}
	if memberID <= 0 || amount <= 0 {
		return nil, ErrInvalidInput
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.checkout.CreateOrder(ctx, strconv.FormatInt(memberID, 10), amount, currency)
}

func (s *PaymentService) GetOrderStatus(ctx context.Context, orderRef string) (*CheckoutOrder, error) {
	if s.checkout == nil {
		return nil, ErrCheckoutUnavailable
	}
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.checkout.GetOrder(ctx, orderRef)
}

// RecordPayment verifies the order with the provider and persists its
// outcome. The provider is the source of truth for amount and status.
func (s *PaymentService) RecordPayment(ctx context.Context, memberID int64, orderRef string) (*models.Payment, error) {
	if s.checkout == nil {
		return nil, ErrCheckoutUnavailable
	}
	orderRef = strings.TrimSpace(orderRef)
	if memberID <= 0 || orderRef == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.paymentRepo.GetByOrderRef(ctx, orderRef)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	order, err := s.checkout.GetOrder(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.Status, "completed") {
		return nil, ErrOrderIncomplete
	}

	return s.paymentRepo.Create(ctx, repository.CreatePaymentInput{
		MemberID: memberID,
		OrderRef: order.OrderRef,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   "completed",
	})
}

func (s *PaymentService) ListMemberPayments(ctx context.Context, memberID int64) ([]models.Payment, error) {
	if memberID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.paymentRepo.ListByMemberID(ctx, memberID)
}
