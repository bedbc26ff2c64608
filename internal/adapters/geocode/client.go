// Package geocode adapts a Nominatim-compatible address search API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/httpx"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/ports"

	"golang.org/x/time/rate"
)

const (
	DefaultRPS  = 1.0
	resultLimit = 5
)

type searchResult struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     map[string]string `json:"address"`
}

// Client implements ports.Geocoder.
//
// Requests share a single rate limiter so the upstream usage policy holds
// across concurrent handlers. Results are persisted through cache when set.
type Client struct {
	http    *httpx.Client
	baseURL string
	limiter *rate.Limiter
	cache   ports.GeocodeCache
	logger  *slog.Logger
}

func NewClient(
	http *httpx.Client,
	baseURL string,
	rps float64,
	cache ports.GeocodeCache,
	logger *slog.Logger,
) *Client {
	if rps <= 0 {
		rps = DefaultRPS
	}

	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cache:   cache,
		logger:  logger,
	}
}

// Normalize collapses whitespace and lower-cases q for cache keys.
func Normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func (c *Client) Search(ctx context.Context, query string) (_ []domain.Place, err error) {
	defer obs.Time(ctx, c.logger, "geocode.Search")(&err)

	norm := Normalize(query)
	if norm == "" {
		return nil, errors.New("geocode search: query must be non-empty")
	}

	if c.cache != nil {
		places, ok, err := c.cache.Get(ctx, norm)
		if err != nil {
			c.logger.WarnContext(ctx, "geocode cache read failed", "query", norm, "err", err)
		} else if ok {
			return places, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode search: rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("q", norm)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(resultLimit))
	q.Set("addressdetails", "1")

	var decoded []searchResult
	if err := c.http.GetJSON(ctx, c.baseURL+"/search", q, &decoded); err != nil {
		return nil, fmt.Errorf("geocode search %q: %w", norm, err)
	}

	places := make([]domain.Place, 0, len(decoded))
	for _, r := range decoded {
		p, err := r.toPlace()
		if err != nil {
			c.logger.WarnContext(ctx, "skipping geocode result", "query", norm, "err", err)
			continue
		}
		places = append(places, p)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, norm, places); err != nil {
			c.logger.WarnContext(ctx, "geocode cache write failed", "query", norm, "err", err)
		}
	}

	return places, nil
}

func (r searchResult) toPlace() (domain.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse lon %q: %w", r.Lon, err)
	}

	p := domain.Place{
		DisplayName: r.DisplayName,
		Point:       domain.GeoPoint{Lat: lat, Lng: lon},
		Address:     r.Address,
	}
	if !p.Point.Valid() {
		return domain.Place{}, fmt.Errorf("coordinates out of range: %s,%s", r.Lat, r.Lon)
	}
	return p, nil
}
