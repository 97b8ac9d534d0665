package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pushpak1497/swift/internal/domain"
)

const (
	msgInvalidUserID  = "Invalid user id"
	msgUserNotFound   = "User not found"
	msgUserExists     = "User already exists"
	msgInternalError  = "Internal server error"
	msgRouteNotFound  = "Not found"
	msgInvalidPayload = "Invalid user payload"
)

// errorResponse is the only JSON error body the API returns
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userIDParam parses the {id} path segment. A number too large for int64
// is still a number, and no stored user can carry it, so it is ErrNotFound
// rather than ErrBadRequest.
func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, domain.ErrBadRequest
	}
	return id, nil
}

// detach keeps the request's values (trace span, request id) but drops its
// cancellation, so a client hanging up does not stop a store or upstream
// sequence halfway.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, msgRouteNotFound, http.StatusNotFound)
}
