package api

import (
	"log/slog"
	"net/http"

	"customer-route-service/internal/api/handlers"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/ports"
	"customer-route-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs. Customers may be nil.
type Deps struct {
	Optimizer  *services.Optimizer
	Planner    *services.Planner
	Conditions *services.ConditionsService
	Geocoder   ports.Geocoder
	Customers  ports.CustomerRepository
	Logger     *slog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	obs.RegisterMetrics()
	v := validate.New()

	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(d.Logger), recoverMiddleware(d.Logger))
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	routeHandler := &handlers.RouteHandler{
		Optimizer: d.Optimizer,
		Planner:   d.Planner,
		Customers: d.Customers,
		Logger:    d.Logger,
	}
	conditionsHandler := &handlers.ConditionsHandler{Service: d.Conditions, Validate: v}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: d.Geocoder, Validate: v, Logger: d.Logger}
	customerHandler := &handlers.CustomerHandler{Repo: d.Customers, Logger: d.Logger}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	r.Route("/routes", routeHandler.RegisterRoutes)
	r.Get("/conditions", conditionsHandler.Get)
	r.Get("/geocode", geocodeHandler.Search)
	r.Get("/customers", customerHandler.List)

	return r
}
