package service

import (
	"context"
	"log/slog"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/repository"
	"github.com/gr1d99/shopping-list-api-sub000/internal/validate"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/pagination"
)

// CreateItemInput is the input for adding an item to a shopping list.
type CreateItemInput struct {
	Name          string
	Price         float64
	QuantityDescr string
}

// UpdateItemInput carries the mutable item fields. Nil means "leave
// unchanged".
type UpdateItemInput struct {
	Name          *string
	Price         *float64
	QuantityDescr *string
	Bought        *bool
}

// ItemService handles shopping item operations. Every operation first proves
// the parent list belongs to the owner; an item can never be reached through
// somebody else's list.
type ItemService struct {
	lists  repository.ListRepository
	items  repository.ItemRepository
	logger *slog.Logger
}

// NewItemService creates a new shopping item service.
func NewItemService(lists repository.ListRepository, items repository.ItemRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		lists:  lists,
		items:  items,
		logger: logger,
	}
}

func (s *ItemService) ownedList(ctx context.Context, ownerID, listID int64) (*domain.ShoppingList, error) {
	list, err := s.lists.GetByIDForOwner(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create validates the input and adds an item to one of the owner's lists.
func (s *ItemService) Create(ctx context.Context, ownerID, listID int64, input CreateItemInput) (*domain.ShoppingItem, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	if err := validate.Name("shopping item", input.Name); err != nil {
		return nil, err
	}
	if input.Price < 0 {
		return nil, apperrors.ValidationFailed("price must not be negative")
	}

	item := &domain.ShoppingItem{
		Name:          input.Name,
		Price:         input.Price,
		QuantityDescr: input.QuantityDescr,
		ListID:        listID,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "shopping item created",
		slog.Int64("item_id", item.ID),
		slog.Int64("list_id", listID),
	)

	return item, nil
}

// List returns one page of a list's items ordered by id ascending.
func (s *ItemService) List(ctx context.Context, ownerID, listID int64, params pagination.Params) (pagination.Page[*domain.ShoppingItem], error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return pagination.Page[*domain.ShoppingItem]{}, err
	}

	items, total, err := s.items.ListInList(ctx, listID, params.Limit, params.Offset)
	if err != nil {
		return pagination.Page[*domain.ShoppingItem]{}, err
	}

	return pagination.NewPage(items, total, params), nil
}

// Get returns one item from one of the owner's lists.
func (s *ItemService) Get(ctx context.Context, ownerID, listID, itemID int64) (*domain.ShoppingItem, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}
	return s.items.GetByIDInList(ctx, listID, itemID)
}

// Update applies the supplied changes to an item. An empty update, or one
// that matches the current values, short-circuits with a NoChange result.
func (s *ItemService) Update(ctx context.Context, ownerID, listID, itemID int64, input UpdateItemInput) (*domain.ShoppingItem, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	item, err := s.items.GetByIDInList(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Name != nil && *input.Name != item.Name {
		if err := validate.Name("shopping item", *input.Name); err != nil {
			return nil, err
		}
		item.Name = *input.Name
		changed = true
	}
	if input.Price != nil && *input.Price != item.Price {
		if *input.Price < 0 {
			return nil, apperrors.ValidationFailed("price must not be negative")
		}
		item.Price = *input.Price
		changed = true
	}
	if input.QuantityDescr != nil && *input.QuantityDescr != item.QuantityDescr {
		item.QuantityDescr = *input.QuantityDescr
		changed = true
	}
	if input.Bought != nil && *input.Bought != item.Bought {
		item.Bought = *input.Bought
		changed = true
	}

	if !changed {
		return nil, apperrors.NoChange("shopping item not updated")
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item from one of the owner's lists.
func (s *ItemService) Delete(ctx context.Context, ownerID, listID, itemID int64) error {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, listID, itemID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "shopping item deleted",
		slog.Int64("item_id", itemID),
		slog.Int64("list_id", listID),
	)

	return nil
}
