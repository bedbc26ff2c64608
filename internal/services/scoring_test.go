package services

import (
	"testing"
	"time"

	"customer-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

var scoringNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestCustomerPriorityScore(t *testing.T) {
	tests := []struct {
		name      string
		lastVisit string
		want      float64
	}{
		{"date only", "2026-03-05", 0.4*100 + 0.3*4.5 + 0.3*50},
		{"rfc3339", "2026-03-10T00:00:00Z", 0.4*100 + 0.3*9.5 + 0.3*50},
		{"visit long ago", "2025-12-01", 0.4*100 + 0.3*50},
		{"unparseable", "last tuesday", 0.4*100 + 0.3*50},
		{"missing", "", 0.4*100 + 0.3*50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.CustomerLocation{TotalSales: 100, PotentialSales: 50, LastVisitDate: tt.lastVisit}
			assert.InDelta(t, tt.want, CustomerPriorityScore(c, scoringNow), 1e-9)
		})
	}
}

func TestCustomerPriorityScoreIncreasesWithSales(t *testing.T) {
	c := domain.CustomerLocation{PotentialSales: 20, LastVisitDate: "2026-03-08"}

	prev := CustomerPriorityScore(c, scoringNow)
	for _, sales := range []float64{0.5, 1, 10, 250, 1e6} {
		c.TotalSales = sales
		got := CustomerPriorityScore(c, scoringNow)
		assert.Greater(t, got, prev, "sales=%v", sales)
		prev = got
	}
}

func TestPenalties(t *testing.T) {
	assert.Equal(t, 0.2, WeatherPenalty(domain.WeatherConditions{Condition: "Rain"}))
	assert.Equal(t, 0.3, WeatherPenalty(domain.WeatherConditions{Condition: "Snow"}))
	assert.Equal(t, 0.4, WeatherPenalty(domain.WeatherConditions{Condition: "Thunderstorm"}))
	assert.Equal(t, 0.0, WeatherPenalty(domain.WeatherConditions{Condition: "Clouds"}))
	assert.Equal(t, 0.0, WeatherPenalty(domain.DefaultWeather()))

	assert.Equal(t, 0.3, TrafficPenalty(domain.TrafficConditions{CongestionLevel: domain.CongestionHigh}))
	assert.Equal(t, 0.15, TrafficPenalty(domain.TrafficConditions{CongestionLevel: domain.CongestionMedium}))
	assert.Equal(t, 0.0, TrafficPenalty(domain.DefaultTraffic()))
}

func TestAdjustedDuration(t *testing.T) {
	r := domain.RouteResult{Duration: 10}
	w := domain.WeatherConditions{Condition: "Snow"}
	tr := domain.TrafficConditions{CongestionLevel: domain.CongestionMedium}

	assert.InDelta(t, 14.5, AdjustedDuration(r, w, tr), 1e-9)
}

func TestSelectOptimalRoute(t *testing.T) {
	w := domain.WeatherConditions{Condition: "Rain"}
	tr := domain.TrafficConditions{CongestionLevel: domain.CongestionHigh}

	routes := []domain.RouteResult{
		{Distance: 1, Duration: 10},
		{Distance: 2, Duration: 9},
		{Distance: 3, Duration: 9},
	}

	got, ok := SelectOptimalRoute(routes, w, tr)
	assert.True(t, ok)
	assert.Equal(t, routes[1], got)
}

func TestSelectOptimalRouteEmpty(t *testing.T) {
	got, ok := SelectOptimalRoute(nil, domain.DefaultWeather(), domain.DefaultTraffic())
	assert.False(t, ok)
	assert.True(t, got.IsEmpty())
}
