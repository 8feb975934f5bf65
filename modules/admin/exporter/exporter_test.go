package exporter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"wedding-rsvp/modules/rsvp/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	dietary := "no nuts"
	rsvps := []entity.RSVP{
		{
			ID: 1, Name: "Jane Smith", Email: "jane@example.com",
			IsAttending: true, NumberOfGuests: 2,
			GuestNames:          entity.GuestNames{"Anna Lee", "Ben Cole"},
			DietaryRestrictions: &dietary,
		},
		{
			ID: 2, Name: "Bob Jones", Email: "bob@example.com",
			IsAttending: false,
		},
	}

	body, err := RenderCSV(rsvps)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "Jane Smith", records[1][1])
	assert.Equal(t, "yes", records[1][3])
	assert.Equal(t, "Anna Lee; Ben Cole", records[1][5])
	assert.Equal(t, "no nuts", records[1][6])
	assert.Equal(t, "no", records[2][3])
	assert.Empty(t, records[2][5])
}

func TestRenderCSV_EmptySet(t *testing.T) {
	body, err := RenderCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 6, 20, 15, 4, 5, 0, time.UTC)
	key := ObjectKey("Jane and John", now)

	assert.Equal(t, "exports/jane-and-john/rsvps-2026-06-20T15-04-05.csv", key)
}
