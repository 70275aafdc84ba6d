package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gr1d99/shopping-list-api-sub000/internal/auth"
	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/repository"
	"github.com/gr1d99/shopping-list-api-sub000/internal/validate"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

// EventPublisher publishes account lifecycle events. Failures are logged and
// never fail the request that triggered them.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishPasswordResetRequested(ctx context.Context, user *domain.User, token string) error
	PublishUserDeleted(ctx context.Context, user *domain.User) error
}

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the input for authenticating an account.
type LoginInput struct {
	Username string
	Password string
}

// UpdateAccountInput carries the mutable account fields. Nil means "leave
// unchanged".
type UpdateAccountInput struct {
	Username *string
	Email    *string
}

// ResetPasswordInput is the input for completing a password reset.
type ResetPasswordInput struct {
	Email           string
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// AuthService handles registration, authentication, token lifecycle, and
// account management.
type AuthService struct {
	users       repository.UserRepository
	resetTokens repository.ResetTokenRepository
	revoked     repository.RevocationStore
	tokens      *auth.Manager
	hasher      *auth.PasswordHasher
	events      EventPublisher
	resetTTL    time.Duration
	logger      *slog.Logger
}

// NewAuthService creates a new auth service. resetTTL is the validity window
// of password reset tokens.
func NewAuthService(
	users repository.UserRepository,
	resetTokens repository.ResetTokenRepository,
	revoked repository.RevocationStore,
	tokens *auth.Manager,
	hasher *auth.PasswordHasher,
	events EventPublisher,
	resetTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		resetTokens: resetTokens,
		revoked:     revoked,
		tokens:      tokens,
		hasher:      hasher,
		events:      events,
		resetTTL:    resetTTL,
		logger:      logger,
	}
}

// Register validates the input and creates a new account. The email is
// normalized before it is stored so that addresses differing only in domain
// case collide on the uniqueness constraint.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validate.Username(input.Username); err != nil {
		return nil, err
	}
	if err := validate.Email(input.Email); err != nil {
		return nil, err
	}
	if err := validate.Password(input.Password); err != nil {
		return nil, err
	}
	if err := validate.PasswordsMatch(input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        domain.NormalizeEmail(input.Email),
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	if err := s.events.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}

// Login checks the credentials and mints a fresh access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user with that username does not exist")
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		return nil, apperrors.Unauthorized("incorrect password")
	}

	access, _, _, err := s.tokens.MintAccess(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	refresh, _, _, err := s.tokens.MintRefresh(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	return &domain.TokenPair{
		AuthToken:    access,
		RefreshToken: refresh,
	}, nil
}

// Logout revokes the presented token's jti. Logging out twice is not an
// error; the middleware rejects the second request before it gets here only
// if the same token is replayed, and re-revoking a jti is idempotent anyway.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.revoked.Revoke(ctx, jti); err != nil {
		return apperrors.Unavailable(err)
	}
	return nil
}

// Refresh mints a new access token for the holder of a valid refresh token.
// TODO: rotate the refresh token here once clients can handle replacement.
func (s *AuthService) Refresh(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.TokenInvalid()
		}
		return "", err
	}

	access, _, _, err := s.tokens.MintAccess(ctx, user.Username)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}

	return access, nil
}

// GetAccount returns the account behind the authenticated username.
func (s *AuthService) GetAccount(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// UpdateAccount applies the supplied username/email changes. An empty update,
// or one that matches the current values, short-circuits with a NoChange
// result. A successful change revokes the presented token: the subject claim
// may no longer match the stored username, so the client must log in again.
func (s *AuthService) UpdateAccount(ctx context.Context, username, jti string, input UpdateAccountInput) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Username != nil && *input.Username != user.Username {
		if err := validate.Username(*input.Username); err != nil {
			return nil, err
		}
		user.Username = *input.Username
		changed = true
	}

	if input.Email != nil {
		normalized := domain.NormalizeEmail(*input.Email)
		if normalized != user.Email {
			if err := validate.Email(*input.Email); err != nil {
				return nil, err
			}
			user.Email = normalized
			changed = true
		}
	}

	if !changed {
		return nil, apperrors.NoChange("account not updated")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.revoked.Revoke(ctx, jti); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke token after account update",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "account updated", slog.Int64("user_id", user.ID))

	return user, nil
}

// RequestPasswordReset creates a single-use reset token for the account
// behind the email and hands it to the email sender queue. The token is also
// returned so the handler can echo it; real deployments deliver it
// out-of-band only.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.ResetToken, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user with that email does not exist")
		}
		return nil, err
	}

	token := &domain.ResetToken{
		UserID: user.ID,
		Token:  uuid.New().String(),
	}

	if err := s.resetTokens.Create(ctx, token); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "password reset requested", slog.Int64("user_id", user.ID))

	if err := s.events.PublishPasswordResetRequested(ctx, user, token.Token); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish password reset event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return token, nil
}

// ResetPassword validates the new password and consumes the reset token,
// atomically swapping in the new password hash. The token is spent even when
// it turns out to be expired. A successful reset revokes every token minted
// for the account before the reset.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := validate.Password(input.NewPassword); err != nil {
		return err
	}
	if err := validate.PasswordsMatch(input.NewPassword, input.ConfirmPassword); err != nil {
		return err
	}
	if err := validate.Email(input.Email); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("user with that email does not exist")
		}
		return err
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.resetTokens.Consume(ctx, user.ID, input.Token, hash, s.resetTTL); err != nil {
		return err
	}

	// Tokens minted under the old password must not outlive it.
	if err := s.revoked.RevokeAllForUser(ctx, user.Username); err != nil {
		return apperrors.Unavailable(err)
	}

	s.logger.InfoContext(ctx, "password reset completed", slog.Int64("user_id", user.ID))

	return nil
}

// DeleteAccount removes the account after re-checking the password. Owned
// shopping lists and their items cascade in the store. The presented token is
// revoked so it cannot outlive the account.
func (s *AuthService) DeleteAccount(ctx context.Context, username, jti, password string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return apperrors.Forbidden("incorrect password")
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	if err := s.revoked.Revoke(ctx, jti); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke token after account deletion",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "account deleted", slog.Int64("user_id", user.ID))

	if err := s.events.PublishUserDeleted(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user deleted event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
