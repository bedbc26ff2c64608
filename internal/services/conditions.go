package services

import (
	"context"
	"log/slog"

	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Conditions are the weather and traffic at a point. Degraded names the
// providers whose values were replaced by neutral defaults.
type Conditions struct {
	Weather  domain.WeatherConditions `json:"weather"`
	Traffic  domain.TrafficConditions `json:"traffic"`
	Degraded []string                 `json:"degraded,omitempty"`
}

// ConditionsService looks up weather and traffic concurrently and never fails.
type ConditionsService struct {
	Weather  ports.WeatherProvider
	Traffic  ports.TrafficProvider
	RadiusKm float64
	Logger   *slog.Logger
}

func NewConditionsService(weather ports.WeatherProvider, traffic ports.TrafficProvider, logger *slog.Logger) *ConditionsService {
	return &ConditionsService{Weather: weather, Traffic: traffic, Logger: logger}
}

// At returns conditions at p within the service radius.
func (s *ConditionsService) At(ctx context.Context, p domain.GeoPoint) Conditions {
	return s.Within(ctx, p, s.RadiusKm)
}

// Within is At with an explicit traffic radius. A radius of 0 or less uses
// the provider default.
func (s *ConditionsService) Within(ctx context.Context, p domain.GeoPoint, radiusKm float64) Conditions {
	var (
		weather    domain.WeatherConditions
		traffic    domain.TrafficConditions
		weatherErr error
		trafficErr error
	)

	// Each goroutine swallows its own error so one failure never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		weather, weatherErr = s.Weather.GetCurrentWeather(ctx, p.Lat, p.Lng)
		return nil
	})
	g.Go(func() error {
		traffic, trafficErr = s.Traffic.GetTrafficConditions(ctx, p.Lat, p.Lng, radiusKm)
		return nil
	})
	_ = g.Wait()

	out := Conditions{Weather: weather, Traffic: traffic}

	if weatherErr != nil {
		s.Logger.WarnContext(ctx, "using default weather", "req_id", obs.RequestID(ctx), "lat", p.Lat, "lng", p.Lng, "err", weatherErr)
		out.Weather = domain.DefaultWeather()
		out.Degraded = append(out.Degraded, "weather")
	}
	if trafficErr != nil {
		s.Logger.WarnContext(ctx, "using default traffic", "req_id", obs.RequestID(ctx), "lat", p.Lat, "lng", p.Lng, "err", trafficErr)
		out.Traffic = domain.DefaultTraffic()
		out.Degraded = append(out.Degraded, "traffic")
	}
	if out.Traffic.Incidents == nil {
		out.Traffic.Incidents = []domain.Incident{}
	}

	return out
}
