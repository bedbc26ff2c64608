// Package geo holds great-circle helpers on WGS84 lat/lng degrees.
package geo

import (
	"math"

	"customer-route-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b domain.GeoPoint) float64 {
	dLat := DegreesToRadians(b.Lat - a.Lat)
	dLng := DegreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(DegreesToRadians(a.Lat))*math.Cos(DegreesToRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h past 1 for nearly antipodal points.
	h = min(max(h, 0), 1)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathKm sums leg distances along points in order.
func PathKm(points []domain.GeoPoint) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += HaversineKm(points[i], points[i+1])
	}
	return total
}
