package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"customer-route-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pt(lat, lng float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: lat, Lng: lng}
}

func customerAt(id string, lat, lng float64) domain.CustomerLocation {
	return domain.CustomerLocation{ID: id, Name: "Customer " + id, Address: domain.Address{Coordinates: pt(lat, lng)}}
}

type fakeWeather struct {
	mu    sync.Mutex
	w     domain.WeatherConditions
	err   error
	calls int
}

func (f *fakeWeather) GetCurrentWeather(context.Context, float64, float64) (domain.WeatherConditions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.WeatherConditions{}, &domain.ConditionFetchError{Provider: "weather", Err: f.err}
	}
	return f.w, nil
}

type fakeTraffic struct {
	mu         sync.Mutex
	t          domain.TrafficConditions
	err        error
	calls      int
	lastRadius float64
}

func (f *fakeTraffic) GetTrafficConditions(_ context.Context, _, _, radiusKm float64) (domain.TrafficConditions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastRadius = radiusKm
	if f.err != nil {
		return domain.TrafficConditions{}, &domain.ConditionFetchError{Provider: "traffic", Err: f.err}
	}
	return f.t, nil
}
