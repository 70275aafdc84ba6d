package http

import (
	"net/http"
	"time"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	"github.com/gr1d99/shopping-list-api-sub000/internal/service"
)

// userResponse is the wire representation of an account.
type userResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	DateJoined string `json:"date_joined"`
	Updated    string `json:"updated"`
}

// AuthHandler exposes registration, authentication, and account management
// over HTTP.
type AuthHandler struct {
	svc *service.AuthService
	loc *time.Location
}

// NewAuthHandler creates a new auth handler. loc is the timezone timestamps
// are rendered in.
func NewAuthHandler(svc *service.AuthService, loc *time.Location) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		loc: loc,
	}
}

func (h *AuthHandler) toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		DateJoined: formatWireTime(user.DateJoined, h.loc),
		Updated:    formatWireTime(user.UpdatedAt, h.loc),
	}
}

type registerRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Account created, you can now login", h.toUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.svc.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Logged in", pair)
}

// Logout handles POST /api/v1/auth/logout. The presented access token is
// revoked for the remainder of its lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	if err := h.svc.Logout(r.Context(), claims.ID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Successfully logged out", nil)
}

// Refresh handles POST /api/v1/auth/refresh-token. It requires a refresh
// token and returns a fresh access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	access, err := h.svc.Refresh(r.Context(), user.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]string{"auth_token": access})
}

// GetAccount handles GET /api/v1/auth/users.
func (h *AuthHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	writeSuccess(w, http.StatusOK, "", h.toUserResponse(user))
}

type updateAccountRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateAccount handles PUT /api/v1/auth/users. A successful change revokes
// the presented token, so the client must log in again.
func (h *AuthHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())
	claims := claimsFrom(r.Context())

	updated, err := h.svc.UpdateAccount(r.Context(), user.Username, claims.ID, service.UpdateAccountInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Account updated, please log in again", h.toUserResponse(updated))
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// DeleteAccount handles DELETE /api/v1/auth/users. The password is
// re-checked before anything is removed.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())
	claims := claimsFrom(r.Context())

	if err := h.svc.DeleteAccount(r.Context(), user.Username, claims.ID, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Account deleted", nil)
}

type resetTokenRequest struct {
	Email string `json:"email" validate:"required"`
}

// RequestResetToken handles POST /api/v1/auth/reset-password/token. The token
// is queued for out-of-band delivery and echoed in the response.
func (h *AuthHandler) RequestResetToken(w http.ResponseWriter, r *http.Request) {
	var req resetTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.svc.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "A reset token has been generated",
		map[string]string{"reset_token": token.Token})
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required"`
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ResetPassword handles POST /api/v1/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.svc.ResetPassword(r.Context(), service.ResetPasswordInput{
		Email:           req.Email,
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Password reset successfully", nil)
}
