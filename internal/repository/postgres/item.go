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

// ItemRepository implements repository.ItemRepository using PostgreSQL.
type ItemRepository struct {
	db DB
}

// NewItemRepository creates a new PostgreSQL-backed shopping item repository.
func NewItemRepository(db DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item and fills in the generated ID and timestamps.
// The (list_id, name) unique index enforces per-list name uniqueness.
func (r *ItemRepository) Create(ctx context.Context, i *domain.ShoppingItem) error {
	query := `
		INSERT INTO shopping_items (name, price, quantity_description, bought, list_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, i.Name, i.Price, i.QuantityDescr, i.Bought, i.ListID).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists(fmt.Sprintf("shopping item %q already exists in this list", i.Name))
		}
		return fmt.Errorf("insert shopping item: %w", err)
	}

	return nil
}

// GetByIDInList retrieves an item by ID scoped to the list.
func (r *ItemRepository) GetByIDInList(ctx context.Context, listID, itemID int64) (*domain.ShoppingItem, error) {
	query := `
		SELECT id, name, price, quantity_description, bought, list_id, created_at, updated_at
		FROM shopping_items
		WHERE id = $1 AND list_id = $2`

	var i domain.ShoppingItem
	err := r.db.QueryRow(ctx, query, itemID, listID).Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.QuantityDescr,
		&i.Bought,
		&i.ListID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shopping item does not exist")
		}
		return nil, fmt.Errorf("scan shopping item: %w", err)
	}

	return &i, nil
}

// ListInList returns one page of the list's items ordered by id ascending,
// plus the total count.
func (r *ItemRepository) ListInList(ctx context.Context, listID int64, limit, offset int) ([]*domain.ShoppingItem, int, error) {
	query := `
		SELECT id, name, price, quantity_description, bought, list_id, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM shopping_items
		WHERE list_id = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, listID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query shopping items: %w", err)
	}
	defer rows.Close()

	var (
		items []*domain.ShoppingItem
		total int
	)

	for rows.Next() {
		var i domain.ShoppingItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Price,
			&i.QuantityDescr,
			&i.Bought,
			&i.ListID,
			&i.CreatedAt,
			&i.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan shopping item row: %w", err)
		}
		items = append(items, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate shopping item rows: %w", err)
	}

	if items == nil {
		items = []*domain.ShoppingItem{}
	}

	return items, total, nil
}

// Update modifies an existing item.
func (r *ItemRepository) Update(ctx context.Context, i *domain.ShoppingItem) error {
	i.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE shopping_items
		SET name = $1, price = $2, quantity_description = $3, bought = $4, updated_at = $5
		WHERE id = $6 AND list_id = $7`

	ct, err := r.db.Exec(ctx, query, i.Name, i.Price, i.QuantityDescr, i.Bought, i.UpdatedAt, i.ID, i.ListID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists(fmt.Sprintf("shopping item %q already exists in this list", i.Name))
		}
		return fmt.Errorf("update shopping item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shopping item does not exist")
	}

	return nil
}

// Delete removes an item from the list.
func (r *ItemRepository) Delete(ctx context.Context, listID, itemID int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM shopping_items WHERE id = $1 AND list_id = $2`, itemID, listID)
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shopping item does not exist")
	}

	return nil
}

// DeleteAllInList removes every item in the list and returns the number
// removed.
func (r *ItemRepository) DeleteAllInList(ctx context.Context, listID int64) (int64, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM shopping_items WHERE list_id = $1`, listID)
	if err != nil {
		return 0, fmt.Errorf("delete all shopping items: %w", err)
	}

	return ct.RowsAffected(), nil
}
