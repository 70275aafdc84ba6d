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

// ListRepository implements repository.ListRepository using PostgreSQL.
type ListRepository struct {
	db DB
}

// NewListRepository creates a new PostgreSQL-backed shopping list repository.
func NewListRepository(db DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create inserts a new shopping list and fills in the generated ID and
// timestamps. The (owner_id, name) unique index enforces per-owner name
// uniqueness at the storage layer.
func (r *ListRepository) Create(ctx context.Context, l *domain.ShoppingList) error {
	query := `
		INSERT INTO shopping_lists (name, owner_id, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, l.Name, l.OwnerID, l.Description, l.IsActive).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists(fmt.Sprintf("shopping list %q already exists", l.Name))
		}
		return fmt.Errorf("insert shopping list: %w", err)
	}

	return nil
}

// GetByIDForOwner retrieves a list by ID scoped to the owner. A list owned
// by someone else is indistinguishable from a missing one.
func (r *ListRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.ShoppingList, error) {
	query := `
		SELECT id, name, owner_id, description, is_active, created_at, updated_at
		FROM shopping_lists
		WHERE id = $1 AND owner_id = $2`

	var l domain.ShoppingList
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&l.ID,
		&l.Name,
		&l.OwnerID,
		&l.Description,
		&l.IsActive,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shopping list does not exist")
		}
		return nil, fmt.Errorf("scan shopping list: %w", err)
	}

	return &l, nil
}

// ListForOwner returns one page of the owner's lists ordered by id ascending,
// plus the total count.
func (r *ListRepository) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*domain.ShoppingList, int, error) {
	query := `
		SELECT id, name, owner_id, description, is_active, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM shopping_lists
		WHERE owner_id = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	return r.queryPage(ctx, query, ownerID, limit, offset)
}

// SearchForOwner returns one page of the owner's lists whose name contains
// the pattern, matched case-insensitively, ordered by id ascending.
func (r *ListRepository) SearchForOwner(ctx context.Context, ownerID int64, pattern string, limit, offset int) ([]*domain.ShoppingList, int, error) {
	query := `
		SELECT id, name, owner_id, description, is_active, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM shopping_lists
		WHERE owner_id = $1 AND name ILIKE $2
		ORDER BY id ASC
		LIMIT $3 OFFSET $4`

	return r.queryPage(ctx, query, ownerID, "%"+pattern+"%", limit, offset)
}

// Update modifies an existing list.
func (r *ListRepository) Update(ctx context.Context, l *domain.ShoppingList) error {
	l.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE shopping_lists
		SET name = $1, description = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6`

	ct, err := r.db.Exec(ctx, query, l.Name, l.Description, l.IsActive, l.UpdatedAt, l.ID, l.OwnerID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists(fmt.Sprintf("shopping list %q already exists", l.Name))
		}
		return fmt.Errorf("update shopping list: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shopping list does not exist")
	}

	return nil
}

// Delete removes a list belonging to the owner. The shopping_items foreign
// key cascades.
func (r *ListRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shopping list does not exist")
	}

	return nil
}

// DeleteAllForOwner removes every list belonging to the owner and returns
// the number removed.
func (r *ListRepository) DeleteAllForOwner(ctx context.Context, ownerID int64) (int64, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM shopping_lists WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete all shopping lists: %w", err)
	}

	return ct.RowsAffected(), nil
}

// queryPage runs a page query that selects list columns plus a trailing
// total_count window column.
func (r *ListRepository) queryPage(ctx context.Context, query string, args ...any) ([]*domain.ShoppingList, int, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query shopping lists: %w", err)
	}
	defer rows.Close()

	var (
		lists []*domain.ShoppingList
		total int
	)

	for rows.Next() {
		var l domain.ShoppingList
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&l.OwnerID,
			&l.Description,
			&l.IsActive,
			&l.CreatedAt,
			&l.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan shopping list row: %w", err)
		}
		lists = append(lists, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate shopping list rows: %w", err)
	}

	if lists == nil {
		lists = []*domain.ShoppingList{}
	}

	return lists, total, nil
}
