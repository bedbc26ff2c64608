package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
)

const customerColumns = `
		id,
		name,
		street,
		city,
		phone,
		lat,
		lng,
		total_sales,
		last_visit_date,
		potential_sales`

// Postgres-backed implementation of the CustomerRepository port.
type PostgresCustomerRepository struct {
	DB     *sql.DB
	Logger *slog.Logger
}

func NewPostgresCustomerRepository(db *sql.DB, logger *slog.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{DB: db, Logger: logger}
}

// Return all customers ordered by name.
func (r *PostgresCustomerRepository) ListCustomers(ctx context.Context) (_ []domain.CustomerLocation, err error) {
	defer obs.Time(ctx, r.Logger, "customers.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres customer repository: DB is nil")
	}

	query := `SELECT` + customerColumns + `
	FROM customers
	ORDER BY name, id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: query customers table: %w", err)
	}
	defer rows.Close()

	customers, err := scanCustomers(rows)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Return the customers with the given IDs in request order. Unknown IDs are skipped.
func (r *PostgresCustomerRepository) GetCustomers(ctx context.Context, ids []string) (_ []domain.CustomerLocation, err error) {
	defer obs.Time(ctx, r.Logger, "customers.Get")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres customer repository: DB is nil")
	}
	if len(ids) == 0 {
		return []domain.CustomerLocation{}, nil
	}

	query := `SELECT` + customerColumns + `
	FROM customers
	WHERE id = ANY($1);
	`
	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get customers: query customers table: %w", err)
	}
	defer rows.Close()

	found, err := scanCustomers(rows)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
	}

	return orderByIDs(found, ids), nil
}

func scanCustomers(rows *sql.Rows) ([]domain.CustomerLocation, error) {
	customers := make([]domain.CustomerLocation, 0, 64)
	for rows.Next() {
		var (
			c        domain.CustomerLocation
			lat, lng sql.NullFloat64
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.Address.Street, &c.Address.City, &c.Phone,
			&lat, &lng, &c.TotalSales, &c.LastVisitDate, &c.PotentialSales,
		)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if lat.Valid && lng.Valid {
			c.Address.Coordinates = &domain.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return customers, nil
}

// orderByIDs returns found in the order of ids. Repeated ids repeat the customer.
func orderByIDs(found []domain.CustomerLocation, ids []string) []domain.CustomerLocation {
	byID := make(map[string]domain.CustomerLocation, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]domain.CustomerLocation, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
