package traffic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"customer-route-service/internal/adapters/cache"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server) (*Client, *cache.Memory[domain.TrafficConditions]) {
	t.Helper()
	hc := httpx.New(t.Name(), time.Second,
		httpx.WithHTTPClient(srv.Client()),
		httpx.WithWaitFunc(func(context.Context, time.Duration) error { return nil }),
	)
	store := cache.NewMemory[domain.TrafficConditions]()
	return NewClient(hc, srv.URL+"/", store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func TestGetTrafficConditionsCongestionFromSpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed string
		want  domain.CongestionLevel
	}{
		{"crawling", "12", domain.CongestionHigh},
		{"boundary 20", "20", domain.CongestionMedium},
		{"slow", "35.5", domain.CongestionMedium},
		{"boundary 40", "40", domain.CongestionLow},
		{"free flow", "70", domain.CongestionLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"averageSpeed": ` + tt.speed + `, "incidents": []}`))
			}))
			defer srv.Close()

			c, _ := newTestClient(t, srv)
			got, err := c.GetTrafficConditions(context.Background(), 40.7, -74.0, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CongestionLevel)
			assert.Empty(t, got.Incidents)
		})
	}
}

func TestGetTrafficConditionsDefaultsRadius(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conditions", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"averageSpeed": 18,
			"incidents": [{
				"type": "accident",
				"severity": "major",
				"description": "two lanes closed",
				"location": {"latitude": 40.71, "longitude": -74.01}
			}]
		}`))
	}))
	defer srv.Close()

	c, store := newTestClient(t, srv)
	ctx := context.Background()

	got, err := c.GetTrafficConditions(ctx, 40.7, -74, 0)
	require.NoError(t, err)

	assert.Equal(t, "latitude=40.7&longitude=-74&radius=5", gotQuery)
	assert.Equal(t, domain.CongestionHigh, got.CongestionLevel)
	require.Len(t, got.Incidents, 1)
	assert.Equal(t, domain.Incident{
		Type:        "accident",
		Severity:    "major",
		Description: "two lanes closed",
		Location:    domain.GeoPoint{Lat: 40.71, Lng: -74.01},
	}, got.Incidents[0])
	assert.True(t, store.Has(ctx, "traffic:40.70000:-74.00000:5"))
}

func TestGetTrafficConditionsCachesSuccessOnly(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"incidents": []}`))
			return
		}
		w.Write([]byte(`{"averageSpeed": 55, "incidents": []}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.GetTrafficConditions(ctx, 1, 1, 5)
	var fe *domain.ConditionFetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "traffic", fe.Provider)

	got, err := c.GetTrafficConditions(ctx, 1, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.AverageSpeed)

	_, err = c.GetTrafficConditions(ctx, 1, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetTrafficConditionsUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, store := newTestClient(t, srv)

	_, err := c.GetTrafficConditions(context.Background(), 1, 1, 5)
	var fe *domain.ConditionFetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 0, store.Len())
}
