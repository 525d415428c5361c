package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPastDate(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 30, 0, 0, time.UTC)

	past, err := IsPastDate("2026-08-22", now)
	require.NoError(t, err)
	assert.True(t, past)

	// Today is never past, regardless of the clock time.
	past, err = IsPastDate("2026-08-23", now)
	require.NoError(t, err)
	assert.False(t, past)

	past, err = IsPastDate("2026-08-24", now)
	require.NoError(t, err)
	assert.False(t, past)
}

func TestIsPastDateIgnoresServerTimeZone(t *testing.T) {
	// Same wall-clock date in zones on both sides of UTC; today must
	// never be classified as past.
	for _, zone := range []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+9", 9*60*60),
	} {
		now := time.Date(2026, 8, 23, 10, 0, 0, 0, zone)

		past, err := IsPastDate("2026-08-23", now)
		require.NoError(t, err)
		assert.False(t, past, "today misclassified as past in %s", zone)

		past, err = IsPastDate("2026-08-22", now)
		require.NoError(t, err)
		assert.True(t, past)
	}
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	_, err := ParseDate("23/08/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-8-3")
	assert.Error(t, err)

	_, err = ParseDate("2026-08-23")
	assert.NoError(t, err)
}

func TestParseTimeRejectsOtherFormats(t *testing.T) {
	_, err := ParseTime("9:00 AM")
	assert.Error(t, err)

	_, err = ParseTime("09:00")
	assert.NoError(t, err)
}
