package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type AgreementRepo struct {
	db db.DB
}

func NewAgreementRepo(db db.DB) *AgreementRepo {
	return &AgreementRepo{db: db}
}

func (r *AgreementRepo) Create(ctx context.Context, agr *repository.Agreement) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO agreements (
            id, request_id, status, document_ref, content_hash, expires_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, agr.ID, agr.RequestID, agr.Status, agr.DocumentRef, agr.ContentHash,
		agr.ExpiresAt, agr.CreatedAt, agr.UpdatedAt)
	return err
}

func (r *AgreementRepo) GetByID(ctx context.Context, id string) (*repository.Agreement, error) {
	var agr repository.Agreement
	err := r.db.Get(ctx, &agr, "SELECT * FROM agreements WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &agr, nil
}

func (r *AgreementRepo) GetByRequestID(ctx context.Context, requestID string) (*repository.Agreement, error) {
	var agr repository.Agreement
	err := r.db.Get(ctx, &agr, `
        SELECT * FROM agreements
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
	return &agr, nil
}

func (r *AgreementRepo) Update(ctx context.Context, agr *repository.Agreement) error {
	agr.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
        UPDATE agreements
        SET
            status = $1,
            signed_document_ref = $2,
            signed_at = $3,
            signer_addr = $4,
            updated_at = $5
        WHERE id = $6
    `, agr.Status, agr.SignedDocumentRef, agr.SignedAt, agr.SignerAddr, agr.UpdatedAt, agr.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
