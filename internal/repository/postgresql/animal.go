package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type AnimalRepo struct {
	db db.DB
}

func NewAnimalRepo(db db.DB) *AnimalRepo {
	return &AnimalRepo{db: db}
}

func (r *AnimalRepo) Create(ctx context.Context, animal *repository.Animal) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO animals (
            id, org_id, name, species, age_months, special_needs, status, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, animal.ID, animal.OrgID, animal.Name, animal.Species, animal.AgeMonths,
		animal.SpecialNeeds, animal.Status, animal.Version, animal.CreatedAt, animal.UpdatedAt)
	return err
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (*repository.Animal, error) {
	var animal repository.Animal
	err := r.db.Get(ctx, &animal, "SELECT * FROM animals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &animal, nil
}

func (r *AnimalRepo) Update(ctx context.Context, animal *repository.Animal) error {
	animal.UpdatedAt = time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
        UPDATE animals
        SET
            name = $1,
            species = $2,
            age_months = $3,
            special_needs = $4,
            status = $5,
            version = version + 1,
            updated_at = $6
        WHERE id = $7 AND version = $8
    `, animal.Name, animal.Species, animal.AgeMonths, animal.SpecialNeeds,
		animal.Status, animal.UpdatedAt, animal.ID, animal.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrVersionConflict
	}
	animal.Version++
	return nil
}

// GetAllAdoptable feeds the availability cache at boot.
func (r *AnimalRepo) GetAllAdoptable(ctx context.Context) ([]*repository.Animal, error) {
	var animals []*repository.Animal
	err := r.db.Select(ctx, &animals, `
        SELECT * FROM animals
        WHERE status = 'available' OR status = 'fostered'
        ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get adoptable animals: %w", err)
	}
	return animals, nil
}
