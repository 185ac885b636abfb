package clock

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_UsesOrgTimezone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on 1 March is already 2 March in Kolkata.
	instant := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	utc := New(time.UTC, func() time.Time { return instant })
	ist := New(kolkata, func() time.Time { return instant })

	assert.Equal(t, "2026-03-01", FormatDay(utc.Today()))
	assert.Equal(t, "2026-03-02", FormatDay(ist.Today()))
	assert.Equal(t, "20:00:00", utc.TimeOfDay(instant))
	assert.Equal(t, "01:30:00", ist.TimeOfDay(instant))
}

func TestParseDay_MatchesDay(t *testing.T) {
	c := New(time.UTC, func() time.Time { return time.Date(2026, 7, 9, 23, 59, 0, 0, time.UTC) })
	parsed, err := ParseDay("2026-07-09")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(c.Today()))
}
