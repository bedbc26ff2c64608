package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/geo"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/polyline"
	"customer-route-service/internal/ports"
)

// FallbackDuration is the fixed duration, in minutes, of a fallback suggestion.
const FallbackDuration = 30.0

// Kind classifies how a route calculation ended.
type Kind string

const (
	KindOK                  Kind = "ok"
	KindInvalidInput        Kind = "invalid_input"
	KindNoEligibleCustomers Kind = "no_eligible_customers"
	KindServiceUnavailable  Kind = "service_unavailable"
)

// Outcome is the typed result of Optimize.
//
// Result is always safe to render: the empty route for invalid_input and
// no_eligible_customers, the passthrough route for service_unavailable.
type Outcome struct {
	Kind         Kind
	Result       domain.RouteResult
	Alternatives []domain.RouteResult
	Eligible     []domain.CustomerLocation
}

var (
	errNoRoutes        = errors.New("routing engine returned no routes")
	errPointOutOfRange = errors.New("point out of range")
)

// Optimizer orders customer visits through an external routing engine.
//
// No method returns an error. Failures degrade to the empty route or the
// passthrough route and are logged.
type Optimizer struct {
	Engine ports.RoutingEngine
	Logger *slog.Logger
	Clock  func() time.Time
}

func NewOptimizer(engine ports.RoutingEngine, logger *slog.Logger) *Optimizer {
	return &Optimizer{Engine: engine, Logger: logger, Clock: time.Now}
}

func (o *Optimizer) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}

// EligibleCustomers keeps customers with usable coordinates, in input order.
func EligibleCustomers(customers []domain.CustomerLocation) []domain.CustomerLocation {
	out := make([]domain.CustomerLocation, 0, len(customers))
	for _, c := range customers {
		if c.Routable() {
			out = append(out, c)
		}
	}
	return out
}

func waypoints(start domain.GeoPoint, customers []domain.CustomerLocation) []domain.GeoPoint {
	points := make([]domain.GeoPoint, 0, len(customers)+1)
	points = append(points, start)
	for _, c := range customers {
		points = append(points, *c.Address.Coordinates)
	}
	return points
}

// CalculateOptimalRoute routes from start through every eligible customer.
// It returns the empty route for invalid input or when no customer has
// coordinates, and the passthrough route when the engine is unavailable.
func (o *Optimizer) CalculateOptimalRoute(
	ctx context.Context,
	customers []domain.CustomerLocation,
	start *domain.GeoPoint,
) domain.RouteResult {
	return o.Optimize(ctx, customers, start).Result
}

func (o *Optimizer) Optimize(
	ctx context.Context,
	customers []domain.CustomerLocation,
	start *domain.GeoPoint,
) (out Outcome) {
	defer func() { obs.RouteOutcomes.WithLabelValues(string(out.Kind)).Inc() }()

	switch {
	case customers == nil:
		o.Logger.WarnContext(ctx, "route skipped", "req_id", obs.RequestID(ctx), "reason", "customers missing")
		return Outcome{Kind: KindInvalidInput, Result: domain.EmptyRoute()}
	case len(customers) == 0:
		o.Logger.WarnContext(ctx, "route skipped", "req_id", obs.RequestID(ctx), "reason", "customers empty")
		return Outcome{Kind: KindInvalidInput, Result: domain.EmptyRoute()}
	case start == nil || !start.Valid():
		o.Logger.WarnContext(ctx, "route skipped", "req_id", obs.RequestID(ctx), "reason", "invalid start point")
		return Outcome{Kind: KindInvalidInput, Result: domain.EmptyRoute()}
	}

	eligible := EligibleCustomers(customers)
	if len(eligible) == 0 {
		o.Logger.WarnContext(ctx, "route skipped", "req_id", obs.RequestID(ctx), "reason", "no customers with coordinates", "customers", len(customers))
		return Outcome{Kind: KindNoEligibleCustomers, Result: domain.EmptyRoute()}
	}

	points := waypoints(*start, eligible)

	routes, err := o.engineRoutes(ctx, points)
	if err != nil {
		o.Logger.WarnContext(ctx, "routing engine unavailable, returning waypoints", "req_id", obs.RequestID(ctx), "points", len(points), "err", err)
		return Outcome{Kind: KindServiceUnavailable, Result: passthrough(points), Eligible: eligible}
	}

	return Outcome{Kind: KindOK, Result: routes[0], Alternatives: routes, Eligible: eligible}
}

// CalculateOSRMRoute makes a single engine call for coords. Any failure
// yields the passthrough route: coords with zero distance and duration.
func (o *Optimizer) CalculateOSRMRoute(ctx context.Context, coords []domain.GeoPoint) domain.RouteResult {
	routes, err := o.engineRoutes(ctx, coords)
	if err != nil {
		o.Logger.WarnContext(ctx, "routing engine unavailable, returning waypoints", "req_id", obs.RequestID(ctx), "points", len(coords), "err", err)
		return passthrough(coords)
	}
	return routes[0]
}

// engineRoutes decodes every engine alternative. The call fails when the
// engine fails, returns nothing, or the first geometry is malformed; later
// malformed alternatives are dropped.
func (o *Optimizer) engineRoutes(ctx context.Context, coords []domain.GeoPoint) (_ []domain.RouteResult, err error) {
	defer obs.Time(ctx, o.Logger, "optimizer.engineRoutes")(&err)

	raw, err := o.Engine.Route(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("route %d points: %w", len(coords), err)
	}
	if len(raw) == 0 {
		return nil, errNoRoutes
	}

	out := make([]domain.RouteResult, 0, len(raw))
	for i, r := range raw {
		path, err := decodeGeometry(r.Geometry)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("decode route geometry: %w", err)
			}
			o.Logger.WarnContext(ctx, "dropping alternative route", "req_id", obs.RequestID(ctx), "index", i, "err", err)
			continue
		}

		out = append(out, domain.RouteResult{
			Coordinates: path,
			Distance:    r.DistanceMeters / 1000,
			Duration:    r.DurationSeconds / 60,
		})
	}

	return out, nil
}

// decodeGeometry rejects a polyline that decodes to any point outside the
// lat/lng ranges.
func decodeGeometry(geometry string) ([]domain.GeoPoint, error) {
	path, err := polyline.Decode(geometry)
	if err != nil {
		return nil, err
	}
	for i, p := range path {
		if !p.Valid() {
			return nil, fmt.Errorf("point %d (%v, %v): %w", i, p.Lat, p.Lng, errPointOutOfRange)
		}
	}
	return path, nil
}

func passthrough(coords []domain.GeoPoint) domain.RouteResult {
	return domain.RouteResult{Coordinates: append([]domain.GeoPoint{}, coords...)}
}

// FallbackRouteCalculation suggests the single most valuable next stop:
// the start and the highest-priority eligible customer, the straight-line
// distance between them and a fixed 30 minute duration.
func (o *Optimizer) FallbackRouteCalculation(customers []domain.CustomerLocation, start *domain.GeoPoint) domain.RouteResult {
	if start == nil || !start.Valid() {
		o.Logger.Warn("fallback skipped", "reason", "invalid start point")
		return domain.EmptyRoute()
	}

	eligible := EligibleCustomers(customers)
	if len(eligible) == 0 {
		o.Logger.Warn("fallback skipped", "reason", "no customers with coordinates")
		return domain.EmptyRoute()
	}

	now := o.now()
	type ranked struct {
		point domain.GeoPoint
		score float64
	}
	candidates := make([]ranked, len(eligible))
	for i, c := range eligible {
		candidates[i] = ranked{point: *c.Address.Coordinates, score: CustomerPriorityScore(c, now)}
	}

	slices.SortStableFunc(candidates, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})

	top := candidates[0].point
	return domain.RouteResult{
		Coordinates: []domain.GeoPoint{*start, top},
		Distance:    geo.HaversineKm(*start, top),
		Duration:    FallbackDuration,
	}
}
