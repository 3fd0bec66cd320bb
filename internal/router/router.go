package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// New assembles the HTTP API: shared middleware, health, auth and the
// campus resource catalogue.
func New(deps Deps, backend Backend, auth *handler.AuthHandler, health *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing(deps.Tracer))
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(chimw.Recoverer)

	if health != nil {
		r.Get("/healthz", health.Healthz)
	}
	SetupAuthRoutes(r, auth, deps)
	MountCatalogue(r, backend, deps)
	return r
}
