package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/validator"
)

// envelope is the uniform response shape. Every 2xx carries status "success",
// everything else "fail". Data is omitted when there is nothing to attach.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// wireTimeLayout is the timestamp format used on the wire.
const wireTimeLayout = "2006-01-02 15:04:05"

// formatWireTime renders a timestamp in the configured timezone.
func formatWireTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(wireTimeLayout)
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeSuccess writes a success envelope with optional message and data.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// writeFail writes a fail envelope with the given message.
func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		Status:  "fail",
		Message: message,
	})
}

// writeError maps an application error onto the envelope. A NoChange result
// is a success with the "not updated" message; everything else is a fail
// carrying the error's message. Unknown errors become a generic 500 so
// internals never leak onto the wire.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperrors.ErrNoChange) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			writeSuccess(w, http.StatusOK, appErr.Message, nil)
			return
		}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			writeFail(w, appErr.Status, "an internal error occurred")
			return
		}
		writeFail(w, appErr.Status, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeFail(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		writeFail(w, http.StatusConflict, "resource already exists")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeFail(w, http.StatusInternalServerError, "an internal error occurred")
	}
}

// decodeJSON decodes a request body into dst, rejecting bodies over 1 MiB
// and trailing garbage, then enforces the struct's validation tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperrors.InvalidInput("request body must be valid JSON")
	}
	if dec.More() {
		return apperrors.InvalidInput("request body must contain a single JSON object")
	}

	if err := validator.Validate(dst); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.InvalidInput(vErr.Error())
		}
		return apperrors.InvalidInput("invalid request body")
	}

	return nil
}
