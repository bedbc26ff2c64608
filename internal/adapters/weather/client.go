// Package weather adapts an OpenWeatherMap-compatible current weather API.
package weather

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
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/ports"

	"github.com/go-playground/validator/v10"
)

const providerName = "weather"

type mainBlock struct {
	Temp      *float64 `json:"temp" validate:"required"`
	FeelsLike *float64 `json:"feels_like" validate:"required"`
	Humidity  *float64 `json:"humidity" validate:"required"`
	Pressure  *float64 `json:"pressure" validate:"required"`
}

type weatherItem struct {
	Main        string `json:"main" validate:"required"`
	Description string `json:"description"`
}

type windBlock struct {
	Speed *float64 `json:"speed" validate:"required"`
}

type cloudsBlock struct {
	All *float64 `json:"all" validate:"required"`
}

type envelope struct {
	Main    *mainBlock    `json:"main" validate:"required"`
	Weather []weatherItem `json:"weather" validate:"required,min=1,dive"`
	Wind    *windBlock    `json:"wind" validate:"required"`
	Clouds  *cloudsBlock  `json:"clouds" validate:"required"`
}

func (e envelope) toDomain() domain.WeatherConditions {
	return domain.WeatherConditions{
		Temperature: *e.Main.Temp,
		FeelsLike:   *e.Main.FeelsLike,
		WindSpeed:   *e.Wind.Speed,
		Humidity:    *e.Main.Humidity,
		Pressure:    *e.Main.Pressure,
		Cloudiness:  *e.Clouds.All,
		Condition:   e.Weather[0].Main,
		Description: e.Weather[0].Description,
	}
}

// Client implements ports.WeatherProvider. Results are cached per coordinate
// on success only.
type Client struct {
	http     *httpx.Client
	baseURL  string
	apiKey   string
	cache    ports.Cache[domain.WeatherConditions]
	validate *validator.Validate
	logger   *slog.Logger
}

func NewClient(
	http *httpx.Client,
	baseURL string,
	apiKey string,
	cache ports.Cache[domain.WeatherConditions],
	logger *slog.Logger,
) *Client {
	return &Client{
		http:     http,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		cache:    cache,
		validate: validate.New(),
		logger:   logger,
	}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.5f:%.5f", lat, lon)
}

func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (_ domain.WeatherConditions, err error) {
	defer obs.Time(ctx, c.logger, "weather.GetCurrentWeather")(&err)

	key := cacheKey(lat, lon)
	if c.cache != nil {
		if w, ok := c.cache.Get(ctx, key); ok {
			return w, nil
		}
	}

	if c.apiKey == "" {
		return domain.WeatherConditions{}, &domain.ConditionFetchError{Provider: providerName, Err: errors.New("api key is not configured")}
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var env envelope
	if err := c.http.GetJSON(ctx, c.baseURL+"/weather", q, &env); err != nil {
		return domain.WeatherConditions{}, &domain.ConditionFetchError{Provider: providerName, Err: err}
	}

	if err := c.validate.Struct(env); err != nil {
		return domain.WeatherConditions{}, &domain.ConditionFetchError{
			Provider: providerName,
			Err:      fmt.Errorf("invalid response shape: %s", validate.Describe(err)),
		}
	}

	w := env.toDomain()
	if c.cache != nil {
		c.cache.Set(ctx, key, w)
	}

	return w, nil
}
