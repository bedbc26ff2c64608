package services

import (
	"customer-route-service/internal/domain"
	"customer-route-service/internal/geo"
)

// OptimizeRoute builds a closed nearest-neighbor tour.
//
// points[0] is the fixed start. At each step the closest unvisited point by
// haversine distance is visited next; on equal distances the earlier point in
// the remaining list wins. The start is appended again at the end.
// It is a heuristic, not an exact TSP solution.
func OptimizeRoute(points []domain.GeoPoint) []domain.GeoPoint {
	if len(points) == 0 {
		return []domain.GeoPoint{}
	}

	start := points[0]
	remaining := append([]domain.GeoPoint(nil), points[1:]...)

	tour := make([]domain.GeoPoint, 0, len(points)+1)
	tour = append(tour, start)

	current := start
	for len(remaining) > 0 {
		best := 0
		bestDist := geo.HaversineKm(current, remaining[0])
		for i := 1; i < len(remaining); i++ {
			// Strictly smaller only, so ties keep the earlier point.
			if d := geo.HaversineKm(current, remaining[i]); d < bestDist {
				best, bestDist = i, d
			}
		}

		current = remaining[best]
		tour = append(tour, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return append(tour, start)
}
