package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

// Token kinds. Most endpoints require an access token; the refresh endpoint
// requires a refresh token.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

const issuer = "shopping-list-api"

// Claims are the JWT claims carried by both token kinds. The subject is the
// username, the ID is the jti used for revocation lookups, and the generation
// ties the token to the subject's bulk-revocation counter at mint time.
type Claims struct {
	Kind       string `json:"kind"`
	Generation int64  `json:"gen"`
	jwt.RegisteredClaims
}

// RevocationChecker answers revocation lookups. Verify consults it before
// returning success: first the per-token jti, then the subject's generation.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Generation(ctx context.Context, subject string) (int64, error)
}

// Manager mints and verifies access and refresh tokens tied to a username.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    RevocationChecker
}

// NewManager creates a token manager with the given signing secret, token
// lifetimes, and revocation store.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, revoked RevocationChecker) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    revoked,
	}
}

// MintAccess creates a signed access token for the given username and returns
// the token together with its jti and expiry.
func (m *Manager) MintAccess(ctx context.Context, username string) (string, string, time.Time, error) {
	return m.mint(ctx, username, KindAccess, m.accessTTL)
}

// MintRefresh creates a signed refresh token for the given username and
// returns the token together with its jti and expiry.
func (m *Manager) MintRefresh(ctx context.Context, username string) (string, string, time.Time, error) {
	return m.mint(ctx, username, KindRefresh, m.refreshTTL)
}

func (m *Manager) mint(ctx context.Context, username, kind string, ttl time.Duration) (string, string, time.Time, error) {
	gen, err := m.revoked.Generation(ctx, username)
	if err != nil {
		return "", "", time.Time{}, apperrors.Unavailable(err)
	}

	now := time.Now().UTC()
	exp := now.Add(ttl)
	jti := uuid.New().String()

	claims := &Claims{
		Kind:       kind,
		Generation: gen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	return signed, jti, exp, nil
}

// MaxTTL returns the longer of the two configured token lifetimes. Revocation
// entries can be pruned after this window.
func (m *Manager) MaxTTL() time.Duration {
	if m.refreshTTL > m.accessTTL {
		return m.refreshTTL
	}
	return m.accessTTL
}

// Verify parses and validates a token of the required kind. The checks run in
// order: signature and shape, expiry, kind, then the revocation store (the
// per-token jti followed by the subject's token generation). The
// returned error is always one of the token AppErrors, except when the
// revocation store itself is unreachable.
func (m *Manager) Verify(ctx context.Context, tokenString, requiredKind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.TokenInvalid()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, apperrors.TokenInvalid()
	}

	if claims.Kind != requiredKind {
		return nil, apperrors.TokenKindMismatch(requiredKind)
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if revoked {
		return nil, apperrors.TokenRevoked()
	}

	gen, err := m.revoked.Generation(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if claims.Generation < gen {
		return nil, apperrors.TokenRevoked()
	}

	return claims, nil
}
