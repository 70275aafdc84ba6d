package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated ID and timestamps.
// Uniqueness of username and email is enforced by unique indexes; a
// violation maps to AlreadyExists without a read-then-insert window.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, date_joined, updated_at`

	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.DateJoined, &u.UpdatedAt)
	if err != nil {
		switch {
		case violatesConstraint(err, "users_username"):
			return apperrors.AlreadyExists("user with that username already exists")
		case isUniqueViolation(err):
			return apperrors.AlreadyExists("user with that email exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, date_joined, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(ctx, query, id)
}

// GetByUsername retrieves a user by their username. The lookup is
// case-sensitive.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, date_joined, updated_at
		FROM users
		WHERE username = $1`

	return r.scanUser(ctx, query, username)
}

// GetByEmail retrieves a user by their normalized email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, date_joined, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(ctx, query, email)
}

// Update modifies an existing user.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query, u.Username, u.Email, u.PasswordHash, u.UpdatedAt, u.ID)
	if err != nil {
		switch {
		case violatesConstraint(err, "users_username"):
			return apperrors.AlreadyExists("user with that username already exists")
		case isUniqueViolation(err):
			return apperrors.AlreadyExists("user with that email exists")
		}
		return fmt.Errorf("update user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user does not exist")
	}

	return nil
}

// Delete removes a user. The shopping_lists and shopping_items foreign keys
// cascade, so owned lists and their items go with the account.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user does not exist")
	}

	return nil
}

// scanUser executes a query expected to return a single user row.
func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.DateJoined,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user does not exist")
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}
