package services

import (
	"context"
	"log/slog"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
)

// Plan is a condition-aware route. Suggestion and Tour are only set when the
// routing engine was unavailable.
type Plan struct {
	Kind             Kind                `json:"kind"`
	Route            domain.RouteResult  `json:"route"`
	AdjustedDuration float64             `json:"adjustedDuration"`
	Conditions       *Conditions         `json:"conditions,omitempty"`
	Suggestion       *domain.RouteResult `json:"suggestion,omitempty"`
	Tour             []domain.GeoPoint   `json:"tour,omitempty"`
}

// Planner combines the optimizer with conditions at the start point.
type Planner struct {
	Optimizer  *Optimizer
	Conditions *ConditionsService
	Logger     *slog.Logger
}

func NewPlanner(optimizer *Optimizer, conditions *ConditionsService, logger *slog.Logger) *Planner {
	return &Planner{Optimizer: optimizer, Conditions: conditions, Logger: logger}
}

// Plan picks the engine alternative with the lowest condition-adjusted
// duration. When the engine is unavailable it keeps the passthrough route and
// attaches a fallback suggestion and a local nearest-neighbor tour.
func (p *Planner) Plan(ctx context.Context, customers []domain.CustomerLocation, start *domain.GeoPoint) Plan {
	defer obs.Time(ctx, p.Logger, "planner.Plan")(nil)

	outcome := p.Optimizer.Optimize(ctx, customers, start)

	plan := Plan{Kind: outcome.Kind, Route: outcome.Result}
	if outcome.Kind == KindInvalidInput || outcome.Kind == KindNoEligibleCustomers {
		return plan
	}

	cond := p.Conditions.At(ctx, *start)
	plan.Conditions = &cond

	switch outcome.Kind {
	case KindOK:
		if best, ok := SelectOptimalRoute(outcome.Alternatives, cond.Weather, cond.Traffic); ok {
			plan.Route = best
		}
	case KindServiceUnavailable:
		suggestion := p.Optimizer.FallbackRouteCalculation(outcome.Eligible, start)
		plan.Suggestion = &suggestion
		plan.Tour = OptimizeRoute(waypoints(*start, outcome.Eligible))
	}

	plan.AdjustedDuration = AdjustedDuration(plan.Route, cond.Weather, cond.Traffic)
	p.Logger.InfoContext(ctx, "route planned",
		"req_id", obs.RequestID(ctx),
		"kind", plan.Kind,
		"stops", len(outcome.Eligible),
		"distance_km", plan.Route.Distance,
		"adjusted_min", plan.AdjustedDuration,
		"degraded", cond.Degraded,
	)

	return plan
}
