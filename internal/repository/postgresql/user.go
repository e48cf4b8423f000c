package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *repository.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO users (id, username, password, role, org_id) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Username, string(hashedPassword), user.Role, user.OrgID)
	return err
}

// Authenticate checks the credentials and returns the matching user.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, repository.ErrObjectNotFound
	}
	return &user, nil
}

func (r *UserRepo) ListStaffIDs(ctx context.Context, orgID string) ([]string, error) {
	var ids []string
	err := r.db.Select(ctx, &ids,
		"SELECT id FROM users WHERE org_id = $1 AND role = 'staff' ORDER BY id ASC", orgID)
	return ids, err
}
