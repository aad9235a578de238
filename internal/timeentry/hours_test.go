package timeentry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

func TestHoursBetween(t *testing.T) {
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "WholeHours", duration: 8 * time.Hour, want: "8"},
		{name: "HalfHour", duration: 30 * time.Minute, want: "0.5"},
		{name: "QuarterHour", duration: 7*time.Hour + 45*time.Minute, want: "7.75"},
		{name: "RoundsToTwoPlaces", duration: time.Hour + 10*time.Minute, want: "1.17"},
		{name: "OneMinute", duration: time.Minute, want: "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeentry.HoursBetween(start, start.Add(tt.duration))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestHoursBetween_InvalidInterval(t *testing.T) {
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	_, err := timeentry.HoursBetween(start, start)
	assert.ErrorIs(t, err, timeentry.ErrInvalidInterval)

	_, err = timeentry.HoursBetween(start, start.Add(-time.Minute))
	assert.ErrorIs(t, err, timeentry.ErrInvalidInterval)
}
