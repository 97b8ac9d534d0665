package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/observability/metrics"
	"github.com/pushpak1497/swift/internal/service"
)

// Dependencies are the collaborators the public API needs. They are built
// once by the process entry point and shared by every request.
type Dependencies struct {
	ImportService *service.ImportService
	UserService   *service.UserService
	Audit         *audit.Logger
	Logger        *slog.Logger
}

// NewRouter builds the public API. Unknown paths and known paths with an
// unsupported method both answer 404.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(Recovery(deps.Logger))
	r.Use(metrics.HTTPMetricsMiddleware)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Method(http.MethodGet, "/load", NewLoadHandler(deps.ImportService, deps.Audit, deps.Logger))
	r.Method(http.MethodDelete, "/users", NewClearUsersHandler(deps.UserService, deps.Audit, deps.Logger))
	r.Method(http.MethodPut, "/users", NewCreateUserHandler(deps.UserService, deps.Audit, deps.Logger))
	r.Method(http.MethodGet, "/users/{id}", NewGetUserHandler(deps.UserService, deps.Logger))
	r.Method(http.MethodDelete, "/users/{id}", NewDeleteUserHandler(deps.UserService, deps.Audit, deps.Logger))

	return otelhttp.NewHandler(r, "swift.http")
}
