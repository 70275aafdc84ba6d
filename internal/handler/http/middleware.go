package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gr1d99/shopping-list-api-sub000/internal/auth"
	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/repository"
	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
	userContextKey   contextKey = "user"
)

// Header schemes for presenting tokens.
const (
	SchemeBearer = "bearer"
	SchemeHeader = "header"
)

// TokenExtractor pulls the raw token out of a request according to the
// configured header scheme: either "Authorization: Bearer <token>" or a raw
// custom header such as "x-access-token".
type TokenExtractor struct {
	scheme     string
	headerName string
}

// NewTokenExtractor creates an extractor for the given scheme and custom
// header name. The header name is only consulted when scheme is "header".
func NewTokenExtractor(scheme, headerName string) *TokenExtractor {
	return &TokenExtractor{
		scheme:     scheme,
		headerName: headerName,
	}
}

// Extract returns the raw token string, or an error when the request carries
// none.
func (e *TokenExtractor) Extract(r *http.Request) (string, error) {
	if e.scheme == SchemeHeader {
		token := strings.TrimSpace(r.Header.Get(e.headerName))
		if token == "" {
			return "", apperrors.Unauthorized("authentication token is required")
		}
		return token, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("authentication token is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.Unauthorized("authorization header must be of the form 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

// AuthMiddleware verifies tokens and resolves the account behind them.
type AuthMiddleware struct {
	tokens    *auth.Manager
	users     repository.UserRepository
	extractor *TokenExtractor
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(tokens *auth.Manager, users repository.UserRepository, extractor *TokenExtractor) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		users:     users,
		extractor: extractor,
	}
}

// RequireAccess admits only requests carrying a valid, unrevoked access
// token, and loads the token's account into the request context.
func (m *AuthMiddleware) RequireAccess(next http.Handler) http.Handler {
	return m.require(auth.KindAccess, next)
}

// RequireRefresh admits only requests carrying a valid, unrevoked refresh
// token, and loads the token's account into the request context.
func (m *AuthMiddleware) RequireRefresh(next http.Handler) http.Handler {
	return m.require(auth.KindRefresh, next)
}

func (m *AuthMiddleware) require(kind string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.extractor.Extract(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		claims, err := m.tokens.Verify(r.Context(), token, kind)
		if err != nil {
			writeError(w, r, err)
			return
		}

		// The subject may reference an account that was since renamed or
		// deleted; such tokens are dead even before their expiry.
		user, err := m.users.GetByUsername(r.Context(), claims.Subject)
		if err != nil {
			writeError(w, r, apperrors.TokenInvalid())
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		ctx = context.WithValue(ctx, userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the verified claims stored by the auth middleware.
func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

// userFrom returns the authenticated account stored by the auth middleware.
func userFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}
