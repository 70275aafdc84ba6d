package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoChange         = errors.New("nothing to update")
	ErrInternal         = errors.New("internal error")
	ErrUnavailable      = errors.New("service unavailable")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(message string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// ValidationFailed creates a 422 error for a field that failed domain validation.
func ValidationFailed(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_FAILED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrValidation,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// PasswordsDoNotMatch creates a 400 error for a password/confirm mismatch.
func PasswordsDoNotMatch() *AppError {
	return &AppError{
		Code:    "PASSWORDS_DO_NOT_MATCH",
		Message: "passwords do not match",
		Status:  http.StatusBadRequest,
		Err:     ErrPasswordMismatch,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// NoChange creates a 200 "nothing updated" result carried as an error so
// services can short-circuit empty updates without a separate return path.
func NoChange(message string) *AppError {
	return &AppError{
		Code:    "NO_CHANGE",
		Message: message,
		Status:  http.StatusOK,
		Err:     ErrNoChange,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Unavailable creates a 500 error for transient backend failures.
func Unavailable(err error) *AppError {
	return &AppError{
		Code:    "UNAVAILABLE",
		Message: "service temporarily unavailable, please retry",
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrUnavailable, err),
	}
}

// Token error constructors. All map to 401 but keep distinct codes and
// messages so clients can tell an expired token from a revoked one.

// TokenInvalid creates a 401 error for a malformed or badly signed token.
func TokenInvalid() *AppError {
	return &AppError{
		Code:    "TOKEN_INVALID",
		Message: "Invalid token. Please log in again.",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// TokenExpired creates a 401 error for a token past its expiry.
func TokenExpired() *AppError {
	return &AppError{
		Code:    "TOKEN_EXPIRED",
		Message: "Signature expired. Please log in again.",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// TokenRevoked creates a 401 error for a token whose jti has been revoked.
func TokenRevoked() *AppError {
	return &AppError{
		Code:    "TOKEN_REVOKED",
		Message: "Token has been revoked. Please log in again.",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// TokenKindMismatch creates a 401 error for presenting the wrong token kind,
// e.g. a refresh token on an access-only endpoint.
func TokenKindMismatch(required string) *AppError {
	return &AppError{
		Code:    "TOKEN_KIND_MISMATCH",
		Message: fmt.Sprintf("a %s token is required", required),
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// ResetTokenInvalid creates a 401 error for an unknown or already used
// password reset token.
func ResetTokenInvalid() *AppError {
	return &AppError{
		Code:    "RESET_TOKEN_INVALID",
		Message: "reset token is invalid or has already been used",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// ResetTokenExpired creates a 401 error for a reset token past its TTL.
func ResetTokenExpired() *AppError {
	return &AppError{
		Code:    "RESET_TOKEN_EXPIRED",
		Message: "reset token has expired, please request a new one",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNoChange):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
