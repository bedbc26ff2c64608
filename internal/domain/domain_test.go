package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPointValid(t *testing.T) {
	tests := []struct {
		name string
		p    GeoPoint
		want bool
	}{
		{"origin", GeoPoint{}, true},
		{"corners", GeoPoint{Lat: -90, Lng: 180}, true},
		{"lat too high", GeoPoint{Lat: 90.0001}, false},
		{"lng too low", GeoPoint{Lng: -180.5}, false},
		{"nan", GeoPoint{Lat: math.NaN()}, false},
		{"inf", GeoPoint{Lng: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Valid())
		})
	}
}

func TestGeoPointLngLat(t *testing.T) {
	assert.Equal(t, "28.94,41", GeoPoint{Lat: 41, Lng: 28.94}.LngLat())
	assert.Equal(t, "-0.000015,51.5", GeoPoint{Lat: 51.5, Lng: -0.000015}.LngLat())
}

func TestCustomerRoutable(t *testing.T) {
	var c CustomerLocation
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "address": {"city": "Izmir"}}`), &c))
	assert.False(t, c.Routable())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "address": {"coordinates": {"lat": 38.42, "lng": 27.14}}}`), &c))
	assert.True(t, c.Routable())

	c.Address.Coordinates.Lat = 200
	assert.False(t, c.Routable())
}

func TestCongestionFromSpeed(t *testing.T) {
	assert.Equal(t, CongestionHigh, CongestionFromSpeed(0))
	assert.Equal(t, CongestionHigh, CongestionFromSpeed(19.9))
	assert.Equal(t, CongestionMedium, CongestionFromSpeed(20))
	assert.Equal(t, CongestionMedium, CongestionFromSpeed(39.9))
	assert.Equal(t, CongestionLow, CongestionFromSpeed(40))
}

func TestEmptyRoute(t *testing.T) {
	r := EmptyRoute()
	assert.True(t, r.IsEmpty())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"coordinates":[],"distance":0,"duration":0}`, string(b))

	passthrough := RouteResult{Coordinates: []GeoPoint{{Lat: 1, Lng: 2}}}
	assert.False(t, passthrough.IsEmpty())
}

func TestConditionFetchErrorUnwraps(t *testing.T) {
	inner := assert.AnError
	err := &ConditionFetchError{Provider: "traffic", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "fetch traffic conditions: "+inner.Error(), err.Error())
}
