package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/repository"
	"github.com/gr1d99/shopping-list-api-sub000/internal/validate"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/pagination"
)

// CreateListInput is the input for creating a shopping list.
type CreateListInput struct {
	Name        string
	Description string
}

// UpdateListInput carries the mutable list fields. Nil means "leave
// unchanged".
type UpdateListInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// PasswordVerifier re-checks an account password before destructive bulk
// operations.
type PasswordVerifier interface {
	Verify(hash, raw string) bool
}

// ListService handles shopping list operations. Every operation is scoped to
// the owner taken from the authenticated token, so one user can never see or
// touch another user's lists.
type ListService struct {
	lists  repository.ListRepository
	items  repository.ItemRepository
	users  repository.UserRepository
	hasher PasswordVerifier
	logger *slog.Logger
}

// NewListService creates a new shopping list service.
func NewListService(
	lists repository.ListRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	hasher PasswordVerifier,
	logger *slog.Logger,
) *ListService {
	return &ListService{
		lists:  lists,
		items:  items,
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Create validates the name and creates a shopping list for the owner. New
// lists start active.
func (s *ListService) Create(ctx context.Context, ownerID int64, input CreateListInput) (*domain.ShoppingList, error) {
	if err := validate.Name("shopping list", input.Name); err != nil {
		return nil, err
	}

	list := &domain.ShoppingList{
		Name:        input.Name,
		OwnerID:     ownerID,
		Description: input.Description,
		IsActive:    true,
	}

	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "shopping list created",
		slog.Int64("list_id", list.ID),
		slog.Int64("owner_id", ownerID),
	)

	return list, nil
}

// List returns one page of the owner's shopping lists ordered by id ascending.
func (s *ListService) List(ctx context.Context, ownerID int64, params pagination.Params) (pagination.Page[*domain.ShoppingList], error) {
	lists, total, err := s.lists.ListForOwner(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		return pagination.Page[*domain.ShoppingList]{}, err
	}
	return pagination.NewPage(lists, total, params), nil
}

// Get returns one of the owner's shopping lists by ID.
func (s *ListService) Get(ctx context.Context, ownerID, listID int64) (*domain.ShoppingList, error) {
	return s.lists.GetByIDForOwner(ctx, listID, ownerID)
}

// Update applies the supplied changes to one of the owner's lists. An empty
// update, or one that matches the current values, short-circuits with a
// NoChange result.
func (s *ListService) Update(ctx context.Context, ownerID, listID int64, input UpdateListInput) (*domain.ShoppingList, error) {
	list, err := s.lists.GetByIDForOwner(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Name != nil && *input.Name != list.Name {
		if err := validate.Name("shopping list", *input.Name); err != nil {
			return nil, err
		}
		list.Name = *input.Name
		changed = true
	}
	if input.Description != nil && *input.Description != list.Description {
		list.Description = *input.Description
		changed = true
	}
	if input.IsActive != nil && *input.IsActive != list.IsActive {
		list.IsActive = *input.IsActive
		changed = true
	}

	if !changed {
		return nil, apperrors.NoChange("shopping list not updated")
	}

	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// Delete removes one of the owner's lists along with all of its items.
func (s *ListService) Delete(ctx context.Context, ownerID, listID int64) error {
	if _, err := s.lists.GetByIDForOwner(ctx, listID, ownerID); err != nil {
		return err
	}

	if _, err := s.items.DeleteAllInList(ctx, listID); err != nil {
		return err
	}

	if err := s.lists.Delete(ctx, listID, ownerID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "shopping list deleted",
		slog.Int64("list_id", listID),
		slog.Int64("owner_id", ownerID),
	)

	return nil
}

// DeleteAll removes every list the owner has, after re-checking the account
// password. With nothing to delete the operation reports NotFound.
func (s *ListService) DeleteAll(ctx context.Context, ownerID int64, password string) (int64, error) {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return 0, apperrors.Forbidden("incorrect password")
	}

	count, err := s.lists.DeleteAllForOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperrors.NotFound("no shopping lists to delete")
	}

	s.logger.InfoContext(ctx, "all shopping lists deleted",
		slog.Int64("owner_id", ownerID),
		slog.Int64("count", count),
	)

	return count, nil
}

// Search returns one page of the owner's lists whose name contains the
// keyword, matched case-insensitively. A blank keyword is rejected.
func (s *ListService) Search(ctx context.Context, ownerID int64, keyword string, params pagination.Params) (pagination.Page[*domain.ShoppingList], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return pagination.Page[*domain.ShoppingList]{}, apperrors.ValidationFailed("a search keyword is required")
	}

	lists, total, err := s.lists.SearchForOwner(ctx, ownerID, keyword, params.Limit, params.Offset)
	if err != nil {
		return pagination.Page[*domain.ShoppingList]{}, err
	}

	return pagination.NewPage(lists, total, params), nil
}
