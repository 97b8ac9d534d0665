package handler

import (
	"log/slog"
	"net/http"

	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/service"
)

// ClearUsersHandler handles DELETE /users
type ClearUsersHandler struct {
	userService *service.UserService
	audit       *audit.Logger
	logger      *slog.Logger
}

// NewClearUsersHandler creates a new clear handler
func NewClearUsersHandler(userService *service.UserService, auditLog *audit.Logger, logger *slog.Logger) *ClearUsersHandler {
	return &ClearUsersHandler{
		userService: userService,
		audit:       auditLog,
		logger:      logger,
	}
}

// ServeHTTP removes every user, post and comment
func (h *ClearUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := detach(r)
	if err := h.userService.ClearAll(ctx); err != nil {
		h.audit.LogClear(ctx, "failed", err.Error())
		h.logger.Error("failed to clear users", slog.String("error", err.Error()))
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	h.audit.LogClear(ctx, "success", "")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("All users, posts and comments deleted"))
}
