package ports

import (
	"context"
	"fmt"

	"customer-route-service/internal/domain"
)

// EngineRoute is one route as returned by a routing engine, before decoding.
type EngineRoute struct {
	Geometry        string
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for computing a driving route through an ordered list of points.
type RoutingEngine interface {
	// Return candidate routes, best first. An empty slice means no usable route.
	Route(ctx context.Context, points []domain.GeoPoint) ([]EngineRoute, error)
}

// EngineError reports a routing engine response that could not be used.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("routing engine: code=%s: %s", e.Code, e.Message)
}
