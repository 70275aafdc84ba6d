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

// ResetTokenRepository implements repository.ResetTokenRepository using PostgreSQL.
type ResetTokenRepository struct {
	db DB
}

// NewResetTokenRepository creates a new PostgreSQL-backed reset token repository.
func NewResetTokenRepository(db DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

// Create stores a new reset token for the user.
func (r *ResetTokenRepository) Create(ctx context.Context, t *domain.ResetToken) error {
	query := `
		INSERT INTO reset_tokens (user_id, token)
		VALUES ($1, $2)
		RETURNING id, expired, created_at`

	err := r.db.QueryRow(ctx, query, t.UserID, t.Token).
		Scan(&t.ID, &t.Expired, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}

	return nil
}

// Consume marks the token expired and updates the user's password hash in a
// single transaction. The token row is locked for the duration, so a token
// can never be consumed twice: the second caller sees expired=true and gets
// ResetTokenInvalid. A token older than ttl is still marked expired but the
// password is left untouched and ResetTokenExpired is returned.
func (r *ResetTokenRepository) Consume(ctx context.Context, userID int64, token, newPasswordHash string, ttl time.Duration) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		tokenID   int64
		createdAt time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT id, created_at FROM reset_tokens
		 WHERE user_id = $1 AND token = $2 AND expired = false
		 FOR UPDATE`,
		userID, token,
	).Scan(&tokenID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ResetTokenInvalid()
		}
		return fmt.Errorf("lock reset token: %w", err)
	}

	// Single use: the token is spent whether or not the reset succeeds.
	if _, err := tx.Exec(ctx, `UPDATE reset_tokens SET expired = true WHERE id = $1`, tokenID); err != nil {
		return fmt.Errorf("expire reset token: %w", err)
	}

	if time.Since(createdAt) > ttl {
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return apperrors.ResetTokenExpired()
	}

	ct, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		newPasswordHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user does not exist")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
