package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/types"
)

func TestDefaultCatalogWeather(t *testing.T) {
	c := Default()
	w, err := c.Weather(types.MustDate("2025-06-11"), "AgentsVille")
	require.NoError(t, err)
	assert.Equal(t, "thunderstorm", w.Condition)
	assert.Equal(t, "celsius", w.TemperatureUnit)

	_, err = c.Weather(types.MustDate("2025-06-11"), "Nowhere")
	assert.ErrorIs(t, err, ErrUnknownCity)

	_, err = c.Weather(types.MustDate("2030-01-01"), "agentsville")
	assert.ErrorIs(t, err, ErrNoWeather)
}

func TestActivitiesByDate(t *testing.T) {
	c := Default()
	acts := c.Activities(types.MustDate("2025-06-10"), "AgentsVille")
	require.NotEmpty(t, acts)
	for _, a := range acts {
		assert.Equal(t, types.MustDate("2025-06-10"), a.StartTime.Date())
	}
	assert.Equal(t, "event-2025-06-10-0", acts[0].ActivityID)

	assert.Empty(t, c.Activities(types.MustDate("2025-06-10"), "Elsewhere"))
	assert.NotNil(t, c.Activities(types.MustDate("2025-06-10"), "Elsewhere"))
}

func TestActivityByIDReturnsCopy(t *testing.T) {
	c := Default()
	a, ok := c.ActivityByID("event-2025-06-10-0")
	require.True(t, ok)
	a.RelatedInterests[0] = types.InterestArt

	again, ok := c.ActivityByID("event-2025-06-10-0")
	require.True(t, ok)
	assert.Equal(t, types.InterestTechnology, again.RelatedInterests[0])

	_, ok = c.ActivityByID("event-2025-06-10-99")
	assert.False(t, ok)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`
cities:
  - name: X
    activities:
      - {activity_id: a, name: A, start_time: "2025-01-01T10:00:00", end_time: "2025-01-01T11:00:00", price: 1}
      - {activity_id: a, name: B, start_time: "2025-01-01T12:00:00", end_time: "2025-01-01T13:00:00", price: 1}
`)
	_, err := Load(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate activity id")
}
