package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/gr1d99/shopping-list-api-sub000/internal/auth"
	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasherWithCost(bcrypt.MinCost)
}

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock List Repository ---

type mockListRepository struct {
	mock.Mock
}

func (m *mockListRepository) Create(ctx context.Context, list *domain.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *mockListRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.ShoppingList, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingList), args.Error(1)
}

func (m *mockListRepository) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*domain.ShoppingList, int, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ShoppingList), args.Int(1), args.Error(2)
}

func (m *mockListRepository) SearchForOwner(ctx context.Context, ownerID int64, pattern string, limit, offset int) ([]*domain.ShoppingList, int, error) {
	args := m.Called(ctx, ownerID, pattern, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ShoppingList), args.Int(1), args.Error(2)
}

func (m *mockListRepository) Update(ctx context.Context, list *domain.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *mockListRepository) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *mockListRepository) DeleteAllForOwner(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Item Repository ---

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Create(ctx context.Context, item *domain.ShoppingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) GetByIDInList(ctx context.Context, listID, itemID int64) (*domain.ShoppingItem, error) {
	args := m.Called(ctx, listID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingItem), args.Error(1)
}

func (m *mockItemRepository) ListInList(ctx context.Context, listID int64, limit, offset int) ([]*domain.ShoppingItem, int, error) {
	args := m.Called(ctx, listID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ShoppingItem), args.Int(1), args.Error(2)
}

func (m *mockItemRepository) Update(ctx context.Context, item *domain.ShoppingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) Delete(ctx context.Context, listID, itemID int64) error {
	args := m.Called(ctx, listID, itemID)
	return args.Error(0)
}

func (m *mockItemRepository) DeleteAllInList(ctx context.Context, listID int64) (int64, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Reset Token Repository ---

type mockResetTokenRepository struct {
	mock.Mock
}

func (m *mockResetTokenRepository) Create(ctx context.Context, token *domain.ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockResetTokenRepository) Consume(ctx context.Context, userID int64, token, newPasswordHash string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, newPasswordHash, ttl)
	return args.Error(0)
}

// --- Mock Revocation Store ---

type mockRevocationStore struct {
	mock.Mock
}

func (m *mockRevocationStore) Revoke(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *mockRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockRevocationStore) RevokeAllForUser(ctx context.Context, subject string) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *mockRevocationStore) Generation(ctx context.Context, subject string) (int64, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Event Publisher ---

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishPasswordResetRequested(ctx context.Context, user *domain.User, token string) error {
	args := m.Called(ctx, user, token)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishUserDeleted(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
