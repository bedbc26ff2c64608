package ports

import (
	"context"

	"customer-route-service/internal/domain"
)

// Weather lookup at a coordinate. Failures are *domain.ConditionFetchError.
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherConditions, error)
}

// Traffic lookup around a coordinate. Failures are *domain.ConditionFetchError.
type TrafficProvider interface {
	GetTrafficConditions(ctx context.Context, lat, lon, radiusKm float64) (domain.TrafficConditions, error)
}

// Address search.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
}
