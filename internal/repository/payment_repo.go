package repository

import (
	"context"

	"github.com/elif-d/StudioFitBack/internal/models"
)

type CreatePaymentInput struct {
	MemberID int64
	OrderRef string
	Amount   float64
	Currency string
	Status   string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (member_id, order_ref, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, order_ref, amount, currency, status, created_at
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, input.MemberID, input.OrderRef, input.Amount, input.Currency, input.Status).Scan(
		&payment.ID,
		&payment.MemberID,
		&payment.OrderRef,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error) {
	query := `
		SELECT id, member_id, order_ref, amount, currency, status, created_at
		FROM payments
		WHERE order_ref = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, orderRef).Scan(
		&payment.ID,
		&payment.MemberID,
		&payment.OrderRef,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByMemberID(ctx context.Context, memberID int64) ([]models.Payment, error) {
	query := `
		SELECT id, member_id, order_ref, amount, currency, status, created_at
		FROM payments
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.MemberID,
			&payment.OrderRef,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PaymentRepository) UpdateStatusIfCurrent(ctx context.Context, paymentID int64, currentStatus, nextStatus string) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING id, member_id, order_ref, amount, currency, status, created_at
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, paymentID, currentStatus, nextStatus).Scan(
		&payment.ID,
		&payment.MemberID,
		&payment.OrderRef,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
