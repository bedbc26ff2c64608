package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized search queries
// to geocoding results. Query keys are expected to be normalized by the caller.
type SQLGeocodeCache struct {
	DB     *sql.DB
	Logger *slog.Logger
}

func NewSQLGeocodeCache(db *sql.DB, logger *slog.Logger) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, Logger: logger}
}

// Fetch cached places for a query.
func (s *SQLGeocodeCache) Get(ctx context.Context, query string) (_ []domain.Place, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false, errors.New("get geocode cache: query must not be empty")
	}

	q := `
	SELECT places
    FROM geocode_cache
    WHERE query = $1;
	`

	var raw []byte
	if err := s.DB.QueryRowContext(ctx, q, query).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, false, fmt.Errorf("get geocode cache: decode places for %q: %w", query, err)
	}

	return places, true, nil
}

// Store the places for a query, replacing any previous result.
func (s *SQLGeocodeCache) Put(ctx context.Context, query string, places []domain.Place) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode places: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (query, places, fetched_at)
    VALUES ($1, $2, now())
	ON CONFLICT (query) DO UPDATE
	SET places = EXCLUDED.places,
		fetched_at = EXCLUDED.fetched_at;
	`, query, raw)
	if err != nil {
		return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
	}

	return nil
}
