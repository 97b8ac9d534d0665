package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/service"
)

// DeleteUserHandler handles DELETE /users/{id}
type DeleteUserHandler struct {
	userService *service.UserService
	audit       *audit.Logger
	logger      *slog.Logger
}

// NewDeleteUserHandler creates a new delete handler
func NewDeleteUserHandler(userService *service.UserService, auditLog *audit.Logger, logger *slog.Logger) *DeleteUserHandler {
	return &DeleteUserHandler{
		userService: userService,
		audit:       auditLog,
		logger:      logger,
	}
}

// ServeHTTP removes the user together with its posts and their comments
func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, msgUserNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	h.logger.Debug("delete user request", slog.Int64("user_id", userID))
	resourceID := strconv.FormatInt(userID, 10)

	ctx := detach(r)
	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		status := statusFor(err)
		h.audit.LogUserDelete(ctx, resourceID, "failed", err.Error())
		if status == http.StatusNotFound {
			http.Error(w, msgUserNotFound, status)
			return
		}
		h.logger.Error("failed to delete user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	h.audit.LogUserDelete(ctx, resourceID, "success", "")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "User %d deleted", userID)
}
