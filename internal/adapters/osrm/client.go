// Package osrm adapts the OSRM HTTP route service to ports.RoutingEngine.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/httpx"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/ports"

	"github.com/go-playground/validator/v10"
)

const profile = "driving"

type route struct {
	Geometry string   `json:"geometry" validate:"required"`
	Distance *float64 `json:"distance" validate:"required,gte=0"`
	Duration *float64 `json:"duration" validate:"required,gte=0"`
}

type routeResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []route `json:"routes" validate:"dive"`
}

// Client queries /route/v1 for driving routes with alternatives.
//
// The client is safe for concurrent use.
type Client struct {
	http     *httpx.Client
	baseURL  string
	validate *validator.Validate
	logger   *slog.Logger
}

func NewClient(http *httpx.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:     http,
		baseURL:  strings.TrimRight(baseURL, "/"),
		validate: validate.New(),
		logger:   logger,
	}
}

// coordinatePath renders points as "lng,lat;lng,lat".
func coordinatePath(points []domain.GeoPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.LngLat()
	}
	return strings.Join(parts, ";")
}

func (c *Client) Route(ctx context.Context, points []domain.GeoPoint) (_ []ports.EngineRoute, err error) {
	defer obs.Time(ctx, c.logger, "osrm.Route")(&err)

	if len(points) < 2 {
		return nil, &ports.EngineError{Code: "InvalidInput", Message: "at least two coordinates are required"}
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", c.baseURL, profile, coordinatePath(points))

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "polyline")
	q.Set("alternatives", "true")

	var decoded routeResponse
	if err := c.http.GetJSON(ctx, endpoint, q, &decoded); err != nil {
		if engineErr := fromStatusError(err); engineErr != nil {
			return nil, engineErr
		}
		return nil, fmt.Errorf("osrm route: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, &ports.EngineError{Code: decoded.Code, Message: decoded.Message}
	}

	if err := c.validate.Struct(decoded); err != nil {
		return nil, &ports.EngineError{Code: "InvalidResponse", Message: validate.Describe(err)}
	}

	out := make([]ports.EngineRoute, 0, len(decoded.Routes))
	for _, r := range decoded.Routes {
		out = append(out, ports.EngineRoute{
			Geometry:        r.Geometry,
			DistanceMeters:  *r.Distance,
			DurationSeconds: *r.Duration,
		})
	}

	return out, nil
}

// OSRM answers unroutable requests with 400 and a JSON body carrying the code.
func fromStatusError(err error) *ports.EngineError {
	var se *httpx.StatusError
	if !errors.As(err, &se) {
		return nil
	}

	var body routeResponse
	if json.Unmarshal([]byte(se.Body), &body) != nil || body.Code == "" {
		return nil
	}
	return &ports.EngineError{Code: body.Code, Message: body.Message}
}
