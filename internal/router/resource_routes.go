package router

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// Deps are shared by every mounted resource.
type Deps struct {
	Tokens       middleware.TokenVerifier
	Denylist     repository.TokenDenylist
	Events       service.EventPublisher
	Metrics      *metrics.MetricsManager
	Tracer       trace.TracerProvider
	StoreTimeout time.Duration
	Logger       *logger.Logger
}

type ResourceRoute[T entity.Entity] struct {
	Name  string
	Store repository.EntityStore[T]
	New   func() T
}

type apiVersion struct {
	prefix string
	// validate puts writes through the struct-tag gate.
	validate bool
	// publicCreate lets POST through without a token.
	publicCreate bool
}

var apiVersions = []apiVersion{
	{prefix: "/api/v1", validate: false, publicCreate: true},
	{prefix: "/api/v2", validate: true, publicCreate: false},
}

// MountResource registers the CRUD routes of one resource under every API
// version. Both versions share the store.
func MountResource[T entity.Entity](r chi.Router, route ResourceRoute[T], deps Deps) {
	for _, v := range apiVersions {
		mountVersion(r, v, route, deps)
	}
}

func mountVersion[T entity.Entity](r chi.Router, v apiVersion, route ResourceRoute[T], deps Deps) {
	var gate service.Gate[T]
	if v.validate {
		gate = validation.For[T]()
	}

	ctrl := service.NewResourceController(route.Name, route.Store, gate, deps.Events, deps.StoreTimeout, deps.Logger)
	h := handler.NewResourceHandler(ctrl, route.New, deps.Metrics, deps.Logger)
	auth := middleware.JWTAuth(deps.Tokens, deps.Denylist, deps.Logger)

	r.Route(v.prefix+"/"+route.Name, func(r chi.Router) {
		if v.publicCreate {
			r.Post("/", h.Create)
		} else {
			r.With(auth).Post("/", h.Create)
		}

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}
