package postgresql

import (
	"context"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, entry *repository.HistoryEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO request_history (request_id, status, changed_at)
        VALUES ($1, $2, $3)
    `, entry.RequestID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByRequestID(ctx context.Context, requestID string) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM request_history
        WHERE request_id = $1
        ORDER BY changed_at ASC, id ASC
    `, requestID)
	return entries, err
}
