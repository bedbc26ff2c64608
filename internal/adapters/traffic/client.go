// Package traffic adapts the traffic conditions service.
package traffic

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/httpx"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/ports"

	"github.com/go-playground/validator/v10"
)

const (
	providerName    = "traffic"
	DefaultRadiusKm = 5.0
)

type location struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type incident struct {
	Type        string   `json:"type" validate:"required"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Location    location `json:"location"`
}

type envelope struct {
	AverageSpeed *float64   `json:"averageSpeed" validate:"required,gte=0"`
	Incidents    []incident `json:"incidents" validate:"dive"`
}

func (e envelope) toDomain() domain.TrafficConditions {
	incidents := make([]domain.Incident, 0, len(e.Incidents))
	for _, in := range e.Incidents {
		incidents = append(incidents, domain.Incident{
			Type:        in.Type,
			Severity:    in.Severity,
			Description: in.Description,
			Location:    domain.GeoPoint{Lat: *in.Location.Latitude, Lng: *in.Location.Longitude},
		})
	}

	return domain.TrafficConditions{
		CongestionLevel: domain.CongestionFromSpeed(*e.AverageSpeed),
		AverageSpeed:    *e.AverageSpeed,
		Incidents:       incidents,
	}
}

// Client implements ports.TrafficProvider.
type Client struct {
	http     *httpx.Client
	baseURL  string
	cache    ports.Cache[domain.TrafficConditions]
	validate *validator.Validate
	logger   *slog.Logger
}

func NewClient(http *httpx.Client, baseURL string, cache ports.Cache[domain.TrafficConditions], logger *slog.Logger) *Client {
	return &Client{
		http:     http,
		baseURL:  strings.TrimRight(baseURL, "/"),
		cache:    cache,
		validate: validate.New(),
		logger:   logger,
	}
}

func cacheKey(lat, lon, radiusKm float64) string {
	return fmt.Sprintf("traffic:%.5f:%.5f:%g", lat, lon, radiusKm)
}

func (c *Client) GetTrafficConditions(ctx context.Context, lat, lon, radiusKm float64) (_ domain.TrafficConditions, err error) {
	defer obs.Time(ctx, c.logger, "traffic.GetTrafficConditions")(&err)

	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	key := cacheKey(lat, lon, radiusKm)
	if c.cache != nil {
		if t, ok := c.cache.Get(ctx, key); ok {
			return t, nil
		}
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var env envelope
	if err := c.http.GetJSON(ctx, c.baseURL+"/conditions", q, &env); err != nil {
		return domain.TrafficConditions{}, &domain.ConditionFetchError{Provider: providerName, Err: err}
	}

	if err := c.validate.Struct(env); err != nil {
		return domain.TrafficConditions{}, &domain.ConditionFetchError{
			Provider: providerName,
			Err:      fmt.Errorf("invalid response shape: %s", validate.Describe(err)),
		}
	}

	t := env.toDomain()
	if c.cache != nil {
		c.cache.Set(ctx, key, t)
	}

	return t, nil
}
