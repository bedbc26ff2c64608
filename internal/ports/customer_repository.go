package ports

import (
	"context"

	"customer-route-service/internal/domain"
)

// Port: a boundary for retrieving customer routing views from a data source.
type CustomerRepository interface {
	// Retrieve all customers.
	ListCustomers(ctx context.Context) ([]domain.CustomerLocation, error)
	// Retrieve the customers with the given IDs, in the order given. Unknown IDs are skipped.
	GetCustomers(ctx context.Context, ids []string) ([]domain.CustomerLocation, error)
}
