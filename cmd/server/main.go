package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-route-service/internal/adapters/cache"
	"customer-route-service/internal/adapters/geocode"
	"customer-route-service/internal/adapters/osrm"
	"customer-route-service/internal/adapters/repositories"
	"customer-route-service/internal/adapters/traffic"
	"customer-route-service/internal/adapters/weather"
	"customer-route-service/internal/api"
	"customer-route-service/internal/config"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/db"
	"customer-route-service/internal/platform/httpx"
	"customer-route-service/internal/ports"
	"customer-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, weather, traffic, Nominatim, Postgres,
// Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Weather and traffic share one byte store; Redis replaces it when configured.
	var store ports.Cache[[]byte] = cache.Shared()
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisFromURL(ctx, cfg.RedisURL, "crs:", logger)
		if err != nil {
			return err
		}
		defer rc.Close()
		store = rc
		logger.Info("conditions cache", "backend", "redis")
	}

	var (
		customers    ports.CustomerRepository
		geocodeCache ports.GeocodeCache
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
		customers = repositories.NewPostgresCustomerRepository(conn, logger)
		geocodeCache = cache.NewSQLGeocodeCache(conn, logger)
	} else {
		logger.Warn("DATABASE_URL not set; customer endpoints disabled")
	}

	newClient := func(name string) *httpx.Client {
		return httpx.New(name, cfg.HTTPTimeout, httpx.WithUserAgent(cfg.UserAgent))
	}

	engine := osrm.NewClient(newClient("osrm"), cfg.OSRMBaseURL, logger)
	weatherClient := weather.NewClient(
		newClient("weather"),
		cfg.WeatherBaseURL,
		cfg.WeatherAPIKey,
		cache.Typed[domain.WeatherConditions](store),
		logger,
	)
	trafficClient := traffic.NewClient(
		newClient("traffic"),
		cfg.TrafficBaseURL,
		cache.Typed[domain.TrafficConditions](store),
		logger,
	)
	geocoder := geocode.NewClient(newClient("geocoder"), cfg.GeocoderBaseURL, cfg.GeocoderRPS, geocodeCache, logger)

	if cfg.WeatherAPIKey == "" {
		logger.Warn("WEATHER_API_KEY not set; weather falls back to defaults")
	}

	optimizer := services.NewOptimizer(engine, logger)
	conditions := services.NewConditionsService(weatherClient, trafficClient, logger)
	conditions.RadiusKm = traffic.DefaultRadiusKm

	router := api.NewRouter(api.Deps{
		Optimizer:  optimizer,
		Planner:    services.NewPlanner(optimizer, conditions, logger),
		Conditions: conditions,
		Geocoder:   geocoder,
		Customers:  customers,
		Logger:     logger,
	})

	// Write timeout leaves room for a full upstream retry cycle.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
