package dto

import (
	"bytes"
	"encoding/json"

	"customer-route-service/internal/domain"
)

// RouteRequest keeps customers and start_point raw so that a malformed value
// reaches the optimizer as missing instead of failing the whole request.
type RouteRequest struct {
	Customers  json.RawMessage `json:"customers"`
	StartPoint json.RawMessage `json:"start_point"`
}

type PlanRequest struct {
	Customers   json.RawMessage `json:"customers"`
	CustomerIDs []string        `json:"customer_ids"`
	StartPoint  json.RawMessage `json:"start_point"`
}

type TourRequest struct {
	Points []domain.GeoPoint `json:"points"`
}

type RouteResponse struct {
	Kind  string             `json:"kind,omitempty"`
	Route domain.RouteResult `json:"route"`
}

type TourResponse struct {
	Points []domain.GeoPoint `json:"points"`
}

type PlanResponse struct {
	Kind             string              `json:"kind"`
	Route            domain.RouteResult  `json:"route"`
	AdjustedDuration float64             `json:"adjusted_duration"`
	Conditions       *ConditionsResponse `json:"conditions,omitempty"`
	Suggestion       *domain.RouteResult `json:"suggestion,omitempty"`
	Tour             []domain.GeoPoint   `json:"tour,omitempty"`
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseCustomers returns nil when raw is absent or not an array. A field of
// the wrong type is left zero; a customer whose address.coordinates is not an
// object with numeric lat and lng is kept without coordinates.
func ParseCustomers(raw json.RawMessage) []domain.CustomerLocation {
	if isNull(raw) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := make([]domain.CustomerLocation, 0, len(items))
	for _, item := range items {
		var c domain.CustomerLocation
		// Type mismatches zero the offending field and decoding carries on.
		_ = json.Unmarshal(item, &c)
		c.Address.Coordinates = parseCoordinates(item)
		out = append(out, c)
	}
	return out
}

func parseCoordinates(item json.RawMessage) *domain.GeoPoint {
	var wrapper struct {
		Address struct {
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"address"`
	}
	if err := json.Unmarshal(item, &wrapper); err != nil {
		return nil
	}
	return ParseStartPoint(wrapper.Address.Coordinates)
}

// ParseStartPoint returns nil unless raw is an object with numeric lat and lng.
func ParseStartPoint(raw json.RawMessage) *domain.GeoPoint {
	if isNull(raw) {
		return nil
	}

	var p struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(raw, &p); err != nil || p.Lat == nil || p.Lng == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: *p.Lat, Lng: *p.Lng}
}
