package services

import (
	"context"
	"errors"
	"testing"

	"customer-route-service/internal/adapters/osrm"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(engine ports.RoutingEngine, weather *fakeWeather, traffic *fakeTraffic) *Planner {
	return NewPlanner(
		newTestOptimizer(engine),
		NewConditionsService(weather, traffic, discardLogger()),
		discardLogger(),
	)
}

func TestPlanSelectsFastestAdjustedAlternative(t *testing.T) {
	engine := osrm.NewMockEngine(
		ports.EngineRoute{Geometry: "_p~iF~ps|U", DistanceMeters: 1500, DurationSeconds: 300},
		ports.EngineRoute{Geometry: "_p~iF~ps|U_ulLnnqC", DistanceMeters: 2100, DurationSeconds: 240},
	)
	weather := &fakeWeather{w: domain.WeatherConditions{Condition: "Rain"}}
	traffic := &fakeTraffic{t: domain.TrafficConditions{CongestionLevel: domain.CongestionHigh, Incidents: []domain.Incident{}}}

	plan := newTestPlanner(engine, weather, traffic).Plan(
		context.Background(),
		[]domain.CustomerLocation{customerAt("1", 41.01, 28.95)},
		pt(41.00, 28.94),
	)

	assert.Equal(t, KindOK, plan.Kind)
	assert.InDelta(t, 2.1, plan.Route.Distance, 1e-9)
	assert.InDelta(t, 4.0, plan.Route.Duration, 1e-9)
	assert.InDelta(t, 6.0, plan.AdjustedDuration, 1e-9)
	require.NotNil(t, plan.Conditions)
	assert.Empty(t, plan.Conditions.Degraded)
	assert.Nil(t, plan.Suggestion)
	assert.Nil(t, plan.Tour)
}

func TestPlanServiceUnavailableAddsFallbacks(t *testing.T) {
	engine := osrm.NewFailingMockEngine(errors.New("dial tcp: connection refused"))
	weather := &fakeWeather{err: errors.New("down")}
	traffic := &fakeTraffic{err: errors.New("down")}

	start := pt(0, 0)
	far := customerAt("far", 0, 0.045)
	far.TotalSales = 1000
	near := customerAt("near", 0, 0.018)

	plan := newTestPlanner(engine, weather, traffic).Plan(context.Background(), []domain.CustomerLocation{far, near}, start)

	assert.Equal(t, KindServiceUnavailable, plan.Kind)
	assert.Equal(t, []domain.GeoPoint{*start, *far.Address.Coordinates, *near.Address.Coordinates}, plan.Route.Coordinates)
	assert.Zero(t, plan.Route.Distance)
	assert.Zero(t, plan.AdjustedDuration)

	require.NotNil(t, plan.Suggestion)
	assert.Equal(t, []domain.GeoPoint{*start, *far.Address.Coordinates}, plan.Suggestion.Coordinates)
	assert.Equal(t, FallbackDuration, plan.Suggestion.Duration)

	assert.Equal(t, []domain.GeoPoint{*start, *near.Address.Coordinates, *far.Address.Coordinates, *start}, plan.Tour)

	require.NotNil(t, plan.Conditions)
	assert.Equal(t, []string{"weather", "traffic"}, plan.Conditions.Degraded)
}

func TestPlanSkipsConditionsForRejectedInput(t *testing.T) {
	weather := &fakeWeather{}
	traffic := &fakeTraffic{}
	p := newTestPlanner(osrm.NewMockEngine(), weather, traffic)

	plan := p.Plan(context.Background(), nil, pt(1, 1))
	assert.Equal(t, KindInvalidInput, plan.Kind)
	assert.Equal(t, domain.EmptyRoute(), plan.Route)

	plan = p.Plan(context.Background(), []domain.CustomerLocation{{ID: "x"}}, pt(1, 1))
	assert.Equal(t, KindNoEligibleCustomers, plan.Kind)
	assert.Nil(t, plan.Conditions)

	assert.Zero(t, weather.calls)
	assert.Zero(t, traffic.calls)
}
