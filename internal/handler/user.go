package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/service"
)

// GetUserHandler handles GET /users/{id}
type GetUserHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

// NewGetUserHandler creates a new user read handler
func NewGetUserHandler(userService *service.UserService, logger *slog.Logger) *GetUserHandler {
	return &GetUserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ServeHTTP returns the user with its posts and their comments.
// A missing user is the one error answered with a JSON body.
func (h *GetUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, h.logger, http.StatusNotFound, errorResponse{Error: msgUserNotFound})
		return
	}
	if err != nil {
		http.Error(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	result, err := h.userService.GetUserData(detach(r), userID)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, h.logger, http.StatusNotFound, errorResponse{Error: msgUserNotFound})
		return
	}
	if err != nil {
		h.logger.Error("failed to get user data", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
