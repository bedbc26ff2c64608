package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"customer-route-service/internal/api/dto"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/ports"
	"customer-route-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// RouteHandler exposes route optimization. Bad customers or start points are
// answered with kind=invalid_input and the empty route, never with a 400.
type RouteHandler struct {
	Optimizer *services.Optimizer
	Planner   *services.Planner
	Customers ports.CustomerRepository
	Logger    *slog.Logger
}

func (h *RouteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/optimal", h.Optimal)
	r.Post("/plan", h.Plan)
	r.Post("/fallback", h.Fallback)
	r.Post("/tour", h.Tour)
}

func (h *RouteHandler) Optimal(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out := h.Optimizer.Optimize(r.Context(), dto.ParseCustomers(req.Customers), dto.ParseStartPoint(req.StartPoint))

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{Kind: string(out.Kind), Route: out.Result})
}

// Plan resolves customer_ids through the repository when given.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customers := dto.ParseCustomers(req.Customers)
	if len(req.CustomerIDs) > 0 {
		if customers != nil {
			writeError(w, r, http.StatusBadRequest, "use either customers or customer_ids")
			return
		}
		if h.Customers == nil {
			writeError(w, r, http.StatusServiceUnavailable, "customer store is not configured")
			return
		}

		resolved, err := h.Customers.GetCustomers(r.Context(), req.CustomerIDs)
		if err != nil {
			h.Logger.ErrorContext(r.Context(), "resolve customers failed", "req_id", obs.RequestID(r.Context()), "ids", len(req.CustomerIDs), "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		customers = resolved
	}

	plan := h.Planner.Plan(r.Context(), customers, dto.ParseStartPoint(req.StartPoint))

	res := dto.PlanResponse{
		Kind:             string(plan.Kind),
		Route:            plan.Route,
		AdjustedDuration: plan.AdjustedDuration,
		Suggestion:       plan.Suggestion,
		Tour:             plan.Tour,
	}
	if plan.Conditions != nil {
		cond := dto.NewConditionsResponse(*plan.Conditions)
		res.Conditions = &cond
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route := h.Optimizer.FallbackRouteCalculation(dto.ParseCustomers(req.Customers), dto.ParseStartPoint(req.StartPoint))

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{Route: route})
}

func (h *RouteHandler) Tour(w http.ResponseWriter, r *http.Request) {
	var req dto.TourRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	for i, p := range req.Points {
		if !p.Valid() {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("points[%d] is out of range", i))
			return
		}
	}

	points := services.OptimizeRoute(req.Points)
	if points == nil {
		points = []domain.GeoPoint{}
	}

	writeJSON(w, r, http.StatusOK, dto.TourResponse{Points: points})
}
