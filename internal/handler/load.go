package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/service"
)

// LoadHandler handles GET /load
type LoadHandler struct {
	importService *service.ImportService
	audit         *audit.Logger
	logger        *slog.Logger
}

// NewLoadHandler creates a new load handler
func NewLoadHandler(importService *service.ImportService, auditLog *audit.Logger, logger *slog.Logger) *LoadHandler {
	return &LoadHandler{
		importService: importService,
		audit:         auditLog,
		logger:        logger,
	}
}

// ServeHTTP wipes the store and mirrors the upstream source. The response
// is an empty 200 once every entity is written.
func (h *LoadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("load request")

	ctx := detach(r)
	stats, err := h.importService.LoadAll(ctx)
	if err != nil {
		h.audit.LogImport(ctx, "failed", err.Error())
		h.logger.Error("failed to load upstream data", slog.String("error", err.Error()))
		http.Error(w, "Failed to load data", http.StatusInternalServerError)
		return
	}

	h.audit.LogImport(ctx, "success",
		fmt.Sprintf("users=%d posts=%d comments=%d", stats.Users, stats.Posts, stats.Comments))
	w.WriteHeader(http.StatusOK)
}
