package repository

import (
	"context"
	"time"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
// Uniqueness of username and normalized email is enforced by the store.
type UserRepository interface {
	// Create inserts a new user and fills in its generated ID and timestamps.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username (case-sensitive).
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Owned shopping lists and their items cascade.
	Delete(ctx context.Context, id int64) error
}

// ListRepository defines the interface for shopping list persistence.
// Every query is scoped to an owner; names are unique per owner.
type ListRepository interface {
	// Create inserts a new shopping list and fills in its generated ID and timestamps.
	Create(ctx context.Context, list *domain.ShoppingList) error

	// GetByIDForOwner retrieves a list by ID if it belongs to the owner.
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.ShoppingList, error)

	// ListForOwner returns one page of the owner's lists, ordered by id
	// ascending, together with the total count.
	ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*domain.ShoppingList, int, error)

	// SearchForOwner returns one page of the owner's lists whose name
	// contains the pattern (case-insensitive), ordered by id ascending,
	// together with the total count of matches.
	SearchForOwner(ctx context.Context, ownerID int64, pattern string, limit, offset int) ([]*domain.ShoppingList, int, error)

	// Update modifies an existing list.
	Update(ctx context.Context, list *domain.ShoppingList) error

	// Delete removes a list belonging to the owner. Items cascade.
	Delete(ctx context.Context, id, ownerID int64) error

	// DeleteAllForOwner removes every list belonging to the owner and
	// returns the number of lists removed.
	DeleteAllForOwner(ctx context.Context, ownerID int64) (int64, error)
}

// ItemRepository defines the interface for shopping item persistence.
// Every query is scoped inside a list; names are unique per list.
type ItemRepository interface {
	// Create inserts a new item and fills in its generated ID and timestamps.
	Create(ctx context.Context, item *domain.ShoppingItem) error

	// GetByIDInList retrieves an item by ID if it belongs to the list.
	GetByIDInList(ctx context.Context, listID, itemID int64) (*domain.ShoppingItem, error)

	// ListInList returns one page of the list's items, ordered by id
	// ascending, together with the total count.
	ListInList(ctx context.Context, listID int64, limit, offset int) ([]*domain.ShoppingItem, int, error)

	// Update modifies an existing item.
	Update(ctx context.Context, item *domain.ShoppingItem) error

	// Delete removes an item from the list.
	Delete(ctx context.Context, listID, itemID int64) error

	// DeleteAllInList removes every item in the list and returns the
	// number of items removed.
	DeleteAllInList(ctx context.Context, listID int64) (int64, error)
}

// ResetTokenRepository defines the interface for password reset tokens.
type ResetTokenRepository interface {
	// Create stores a new reset token for the user.
	Create(ctx context.Context, token *domain.ResetToken) error

	// Consume marks the token expired and updates the user's password hash
	// in one transaction. It fails if the token does not exist or was
	// already consumed (ResetTokenInvalid) or if it is older than ttl
	// (ResetTokenExpired, the token is still marked expired).
	Consume(ctx context.Context, userID int64, token, newPasswordHash string, ttl time.Duration) error
}

// RevocationStore tracks tokens that must be rejected for the remainder of
// their validity window, both individually (by jti) and in bulk (by advancing
// the subject's token generation).
type RevocationStore interface {
	// Revoke adds a jti to the store. Idempotent.
	Revoke(ctx context.Context, jti string) error

	// IsRevoked reports whether a jti is in the store.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeAllForUser advances the subject's token generation. Tokens
	// minted before the call carry an older generation and fail
	// verification; there is no need to know their jtis.
	RevokeAllForUser(ctx context.Context, subject string) error

	// Generation reports the subject's current token generation. Zero
	// means the subject has never had a bulk revocation.
	Generation(ctx context.Context, subject string) (int64, error)
}
