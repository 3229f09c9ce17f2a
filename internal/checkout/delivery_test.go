package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.January, 1, hour, min, 0, 0, time.UTC)
}

func TestEstimateDeliveryDate_BeforeCutoff(t *testing.T) {
	est, ok := EstimateDeliveryDate(2, "14:00", at(10, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC), est)
}

func TestEstimateDeliveryDate_AfterCutoffSlipsOneDay(t *testing.T) {
	est, ok := EstimateDeliveryDate(2, "14:00", at(16, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC), est)
}

func TestEstimateDeliveryDate_ExactlyAtCutoffDoesNotSlip(t *testing.T) {
	// slip only when strictly after the cutoff
	est, ok := EstimateDeliveryDate(1, "14:00", at(14, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), est)
}

func TestEstimateDeliveryDate_NoLeadTimeNoEstimate(t *testing.T) {
	_, ok := EstimateDeliveryDate(0, "14:00", at(10, 0))
	assert.False(t, ok)

	_, ok = EstimateDeliveryDate(-3, "14:00", at(10, 0))
	assert.False(t, ok)
}

func TestEstimateDeliveryDate_EmptyCutoffDefaultsToEndOfDay(t *testing.T) {
	est, ok := EstimateDeliveryDate(1, "", at(22, 30))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), est)
}

func TestEstimateDeliveryDate_MalformedCutoffDefaultsToEndOfDay(t *testing.T) {
	for _, cutoff := range []string{"nonsense", "25:00", "12:75", "12"} {
		est, ok := EstimateDeliveryDate(1, cutoff, at(12, 0))
		require.True(t, ok, cutoff)
		assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), est, cutoff)
	}
}

func TestEstimateDeliveryDate_CrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 31, 18, 0, 0, 0, time.UTC)
	est, ok := EstimateDeliveryDate(2, "14:00", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), est)
}
