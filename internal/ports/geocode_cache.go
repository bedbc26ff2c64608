package ports

import (
	"context"

	"customer-route-service/internal/domain"
)

// Persistent cache of geocoding results keyed by normalized query.
type GeocodeCache interface {
	Get(ctx context.Context, query string) ([]domain.Place, bool, error)
	Put(ctx context.Context, query string, places []domain.Place) error
}
