package services

import (
	"math"
	"time"

	"customer-route-service/internal/domain"
)

const (
	salesWeight     = 0.4
	recencyWeight   = 0.3
	potentialWeight = 0.3
	recencyHorizon  = 10.0
)

// parseVisitDate accepts RFC 3339 timestamps and plain dates.
func parseVisitDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CustomerPriorityScore ranks a customer by sales history, visit recency and
// potential. A visit ten or more days ago, or an unreadable visit date,
// contributes no recency.
func CustomerPriorityScore(c domain.CustomerLocation, now time.Time) float64 {
	recency := 0.0
	if visited, ok := parseVisitDate(c.LastVisitDate); ok {
		days := now.Sub(visited).Hours() / 24
		recency = math.Max(recencyHorizon-days, 0)
	}

	return salesWeight*c.TotalSales + recencyWeight*recency + potentialWeight*c.PotentialSales
}

func WeatherPenalty(w domain.WeatherConditions) float64 {
	switch w.Condition {
	case "Rain":
		return 0.2
	case "Snow":
		return 0.3
	case "Thunderstorm":
		return 0.4
	default:
		return 0
	}
}

func TrafficPenalty(t domain.TrafficConditions) float64 {
	switch t.CongestionLevel {
	case domain.CongestionHigh:
		return 0.3
	case domain.CongestionMedium:
		return 0.15
	default:
		return 0
	}
}

// AdjustedDuration scales the route duration by the combined condition penalty.
func AdjustedDuration(r domain.RouteResult, w domain.WeatherConditions, t domain.TrafficConditions) float64 {
	return r.Duration * (1 + WeatherPenalty(w) + TrafficPenalty(t))
}

// SelectOptimalRoute returns the route with the lowest adjusted duration.
// Earlier routes win ties. ok is false when routes is empty.
func SelectOptimalRoute(
	routes []domain.RouteResult,
	w domain.WeatherConditions,
	t domain.TrafficConditions,
) (_ domain.RouteResult, ok bool) {
	if len(routes) == 0 {
		return domain.EmptyRoute(), false
	}

	best := 0
	bestDuration := AdjustedDuration(routes[0], w, t)
	for i := 1; i < len(routes); i++ {
		if d := AdjustedDuration(routes[i], w, t); d < bestDuration {
			best, bestDuration = i, d
		}
	}

	return routes[best], true
}
