package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type PaymentRepo struct {
	db db.DB
}

func NewPaymentRepo(db db.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, payment *repository.Payment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO payments (
            id, request_id, status, amount, currency, intent_id, receipt_ref, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, payment.ID, payment.RequestID, payment.Status, payment.Amount, payment.Currency,
		payment.IntentID, payment.ReceiptRef, payment.CreatedAt, payment.UpdatedAt)
	return err
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*repository.Payment, error) {
	var payment repository.Payment
	err := r.db.Get(ctx, &payment, "SELECT * FROM payments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) GetByRequestID(ctx context.Context, requestID string) (*repository.Payment, error) {
	var payment repository.Payment
	err := r.db.Get(ctx, &payment, `
        SELECT * FROM payments
        WHERE request_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) Update(ctx context.Context, payment *repository.Payment) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments
        SET
            status = $1,
            amount = $2,
            currency = $3,
            intent_id = $4,
            receipt_ref = $5,
            updated_at = $6
        WHERE id = $7
    `, payment.Status, payment.Amount, payment.Currency, payment.IntentID,
		payment.ReceiptRef, payment.UpdatedAt, payment.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
