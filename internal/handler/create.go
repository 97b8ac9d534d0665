package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/service"
)

// CreateUserRequest is the PUT /users body. The outer ID shadows the
// embedded User.ID so a missing id can be told apart from id 0.
type CreateUserRequest struct {
	ID *int64 `json:"id" validate:"required"`
	domain.User
}

// CreateUserHandler handles PUT /users
type CreateUserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
	audit       *audit.Logger
	logger      *slog.Logger
}

// NewCreateUserHandler creates a new user creation handler
func NewCreateUserHandler(userService *service.UserService, auditLog *audit.Logger, logger *slog.Logger) *CreateUserHandler {
	return &CreateUserHandler{
		userService: userService,
		validate:    validator.New(),
		audit:       auditLog,
		logger:      logger,
	}
}

// ServeHTTP stores one user and points the Link header at it
func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request", slog.String("error", err.Error()))
		http.Error(w, msgInvalidPayload, http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	user := req.User
	user.ID = *req.ID
	resourceID := strconv.FormatInt(user.ID, 10)

	ctx := detach(r)
	if err := h.userService.CreateUser(ctx, &user); err != nil {
		h.audit.LogUserCreate(ctx, resourceID, "failed", err.Error())
		switch status := statusFor(err); status {
		case http.StatusConflict:
			http.Error(w, msgUserExists, status)
		default:
			h.logger.Error("failed to create user", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
			http.Error(w, msgInternalError, http.StatusInternalServerError)
		}
		return
	}

	h.audit.LogUserCreate(ctx, resourceID, "success", "")
	w.Header().Set("Link", "/users/"+resourceID)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, "User %d created", user.ID)
}
