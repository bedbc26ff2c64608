package osrm

import (
	"context"
	"sync"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/ports"
)

// MockEngine is an in-memory ports.RoutingEngine that returns canned routes
// and records every request it receives.
type MockEngine struct {
	mu     sync.Mutex
	routes []ports.EngineRoute
	err    error
	calls  [][]domain.GeoPoint
}

func NewMockEngine(routes ...ports.EngineRoute) *MockEngine {
	return &MockEngine{routes: routes}
}

// NewFailingMockEngine returns an engine whose every call fails with err.
func NewFailingMockEngine(err error) *MockEngine {
	return &MockEngine{err: err}
}

func (m *MockEngine) Route(ctx context.Context, points []domain.GeoPoint) ([]ports.EngineRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, append([]domain.GeoPoint(nil), points...))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return append([]ports.EngineRoute(nil), m.routes...), nil
}

// Calls returns the point lists passed to Route, in call order.
func (m *MockEngine) Calls() [][]domain.GeoPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]domain.GeoPoint(nil), m.calls...)
}
