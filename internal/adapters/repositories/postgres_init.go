package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"customer-route-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCustomersQuery := `
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		total_sales DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_visit_date TEXT NOT NULL DEFAULT '',
		potential_sales DOUBLE PRECISION NOT NULL DEFAULT 0,
		CHECK ((lat IS NULL) = (lng IS NULL))
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		places JSONB NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_customers_name
	ON customers(name);
	`

	statements := []string{
		createCustomersQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ParseCustomerSeeds decodes and checks a JSON array of customers.
// Coordinates are optional but must be in range when present.
func ParseCustomerSeeds(data []byte) ([]domain.CustomerLocation, error) {
	var seeds []domain.CustomerLocation
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(seeds))
	rows := make([]domain.CustomerLocation, 0, len(seeds))
	for i, c := range seeds {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("item at index %d: id cannot be empty", i+1)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("item at index %d: duplicate id %q", i+1, c.ID)
		}
		seen[c.ID] = struct{}{}

		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("item id=%q: name cannot be empty", c.ID)
		}
		if c.Address.Coordinates != nil && !c.Address.Coordinates.Valid() {
			return nil, fmt.Errorf("item id=%q: coordinates out of range", c.ID)
		}

		rows = append(rows, c)
	}

	return rows, nil
}

// Populate the database with customer data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed customers: read %q: %w", jsonPath, err)
	}

	rows, err := ParseCustomerSeeds(bytes)
	if err != nil {
		return 0, fmt.Errorf("seed customers: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed customers: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO customers (
		id,
		name,
		street,
		city,
		phone,
		lat,
		lng,
		total_sales,
		last_visit_date,
		potential_sales
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		street = EXCLUDED.street,
		city = EXCLUDED.city,
		phone = EXCLUDED.phone,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		total_sales = EXCLUDED.total_sales,
		last_visit_date = EXCLUDED.last_visit_date,
		potential_sales = EXCLUDED.potential_sales;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed customers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		var lat, lng sql.NullFloat64
		if p := c.Address.Coordinates; p != nil {
			lat = sql.NullFloat64{Float64: p.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: p.Lng, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			c.ID, c.Name, c.Address.Street, c.Address.City, c.Phone,
			lat, lng, c.TotalSales, c.LastVisitDate, c.PotentialSales,
		)
		if err != nil {
			return 0, fmt.Errorf("seed customers: insert id=%q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed customers: commit tx: %w", err)
	}

	return len(rows), nil
}
