package domain

// RouteResult is an ordered route geometry with aggregate metrics.
// Distance is in kilometers, Duration in minutes.
//
// The empty value (no coordinates, zero metrics) means "no route available",
// not a zero-length trip.
type RouteResult struct {
	Coordinates []GeoPoint `json:"coordinates"`
	Distance    float64    `json:"distance"`
	Duration    float64    `json:"duration"`
}

// EmptyRoute returns the "no route available" sentinel.
func EmptyRoute() RouteResult {
	return RouteResult{Coordinates: []GeoPoint{}}
}

// IsEmpty reports whether r is the "no route available" sentinel.
func (r RouteResult) IsEmpty() bool {
	return len(r.Coordinates) == 0 && r.Distance == 0 && r.Duration == 0
}
