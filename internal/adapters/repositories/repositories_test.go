package repositories

import (
	"testing"

	"customer-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomerSeeds(t *testing.T) {
	data := []byte(`[
		{
			"id": " c-1 ",
			"name": "Kadıköy Market",
			"address": {"street": "Moda Cd. 12", "city": "Istanbul", "coordinates": {"lat": 40.987, "lng": 29.027}},
			"totalSales": 1200,
			"lastVisitDate": "2026-02-01",
			"potentialSales": 800
		},
		{"id": "c-2", "name": "No Coordinates Ltd", "address": {"city": "Ankara"}}
	]`)

	got, err := ParseCustomerSeeds(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "c-1", got[0].ID)
	assert.Equal(t, &domain.GeoPoint{Lat: 40.987, Lng: 29.027}, got[0].Address.Coordinates)
	assert.True(t, got[0].Routable())
	assert.Equal(t, 1200.0, got[0].TotalSales)

	assert.Nil(t, got[1].Address.Coordinates)
	assert.False(t, got[1].Routable())
}

func TestParseCustomerSeedsRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"syntax", `[{"id": "a"`, "parse json"},
		{"empty id", `[{"id": " ", "name": "x"}]`, "id cannot be empty"},
		{"duplicate id", `[{"id": "a", "name": "x"}, {"id": "a", "name": "y"}]`, "duplicate id"},
		{"empty name", `[{"id": "a", "name": ""}]`, "name cannot be empty"},
		{"bad coordinates", `[{"id": "a", "name": "x", "address": {"coordinates": {"lat": 95, "lng": 0}}}]`, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCustomerSeeds([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestOrderByIDs(t *testing.T) {
	found := []domain.CustomerLocation{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := orderByIDs(found, []string{"c", "missing", "a", "c"})

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c", "a", "c"}, ids)
}
