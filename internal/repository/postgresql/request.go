package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type RequestRepo struct {
	db db.DB
}

func NewRequestRepo(db db.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) Create(ctx context.Context, req *repository.AdoptionRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO adoption_requests (
            id, animal_id, adopter_id, org_id, status, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, req.ID, req.AnimalID, req.AdopterID, req.OrgID, req.Status, req.Version, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *RequestRepo) GetByID(ctx context.Context, id string) (*repository.AdoptionRequest, error) {
	var req repository.AdoptionRequest
	err := r.db.Get(ctx, &req, "SELECT * FROM adoption_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Update writes the request with an optimistic version check. Zero affected
// rows means a concurrent writer won; the caller reloads and retries.
func (r *RequestRepo) Update(ctx context.Context, req *repository.AdoptionRequest) error {
	req.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
        UPDATE adoption_requests
        SET
            status = $1,
            meeting_type = $2,
            meeting_at = $3,
            meeting_state = $4,
            meeting_confirmed_at = $5,
            meeting_notes = $6,
            meeting_rescheduled_by = $7,
            version = version + 1,
            updated_at = $8
        WHERE id = $9 AND version = $10
    `, req.Status, req.MeetingType, req.MeetingAt, req.MeetingState, req.MeetingConfirmedAt,
		req.MeetingNotes, req.MeetingRescheduledBy, req.UpdatedAt, req.ID, req.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrVersionConflict
	}
	req.Version++
	return nil
}

func (r *RequestRepo) GetByAnimalID(ctx context.Context, animalID string) ([]*repository.AdoptionRequest, error) {
	var reqs []*repository.AdoptionRequest
	err := r.db.Select(ctx, &reqs, `
        SELECT * FROM adoption_requests
        WHERE animal_id = $1
        ORDER BY created_at ASC
    `, animalID)
	return reqs, err
}

func (r *RequestRepo) GetActiveByAdopterAndAnimal(ctx context.Context, adopterID, animalID string) (*repository.AdoptionRequest, error) {
	var req repository.AdoptionRequest
	err := r.db.Get(ctx, &req, `
        SELECT * FROM adoption_requests
        WHERE adopter_id = $1 AND animal_id = $2
          AND status NOT IN ('rejected', 'ignored', 'finalized', 'cancelled')
        LIMIT 1
    `, adopterID, animalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) GetByAdopterID(ctx context.Context, adopterID string) ([]*repository.AdoptionRequest, error) {
	var reqs []*repository.AdoptionRequest
	err := r.db.Select(ctx, &reqs, `
        SELECT * FROM adoption_requests
        WHERE adopter_id = $1
        ORDER BY created_at DESC
    `, adopterID)
	return reqs, err
}

// GetUpcomingMeetings lists confirmed or scheduled meetings starting within
// the window. Used by the best-effort reminder loop.
func (r *RequestRepo) GetUpcomingMeetings(ctx context.Context, until time.Time) ([]*repository.AdoptionRequest, error) {
	var reqs []*repository.AdoptionRequest
	err := r.db.Select(ctx, &reqs, `
        SELECT * FROM adoption_requests
        WHERE status = 'meeting'
          AND meeting_state IN ('scheduled', 'confirmed')
          AND meeting_at <= $1
        ORDER BY meeting_at ASC
    `, until)
	return reqs, err
}
