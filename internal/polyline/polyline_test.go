package polyline

import (
	"errors"
	"testing"

	"customer-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referencePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = []domain.GeoPoint{
	{Lat: 38.5, Lng: -120.2},
	{Lat: 40.7, Lng: -120.95},
	{Lat: 43.252, Lng: -126.453},
}

func assertPointsNear(t *testing.T, want, got []domain.GeoPoint) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Lat, got[i].Lat, 1e-5, "lat[%d]", i)
		assert.InDelta(t, want[i].Lng, got[i].Lng, 1e-5, "lng[%d]", i)
	}
}

func TestDecodeReference(t *testing.T) {
	got, err := Decode(referencePolyline)
	require.NoError(t, err)
	assertPointsNear(t, referencePoints, got)
}

func TestDecodeSinglePoint(t *testing.T) {
	got, err := Decode("_p~iF~ps|U")
	require.NoError(t, err)
	assertPointsNear(t, referencePoints[:1], got)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeReference(t *testing.T) {
	assert.Equal(t, referencePolyline, Encode(referencePoints))
}

func TestRoundTrip(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 41.00, Lng: 28.94},
		{Lat: 41.01, Lng: 28.95},
		{Lat: -33.86882, Lng: 151.20929},
		{Lat: 0, Lng: 0},
		{Lat: -89.99999, Lng: 179.99999},
	}

	got, err := Decode(Encode(points))
	require.NoError(t, err)
	assertPointsNear(t, points, got)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"truncated group":       "_p~iF~ps|",
		"latitude only":         "_p~iF",
		"dangling continuation": "_",
		"below alphabet":        "_p~iF~ps|U ",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(in)
			require.Error(t, err)

			var de *DecodeError
			require.True(t, errors.As(err, &de), "want *DecodeError, got %T", err)
			assert.GreaterOrEqual(t, de.Offset, 0)
			assert.LessOrEqual(t, de.Offset, len(in))
		})
	}
}
