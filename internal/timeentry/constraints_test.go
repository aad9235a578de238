package timeentry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

func TestCheckInterval(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	retention := 30 * 24 * time.Hour

	tests := []struct {
		name    string
		start   time.Time
		end     *time.Time
		wantErr error
	}{
		{
			name:  "ValidClosedInterval",
			start: now.Add(-2 * time.Hour),
			end:   ptr(now.Add(-1 * time.Hour)),
		},
		{
			name:  "ValidOpenInterval",
			start: now.Add(-10 * time.Minute),
		},
		{
			name:    "EndEqualsStart",
			start:   now.Add(-1 * time.Hour),
			end:     ptr(now.Add(-1 * time.Hour)),
			wantErr: timeentry.ErrInvalidInterval,
		},
		{
			name:    "EndBeforeStart",
			start:   now.Add(-1 * time.Hour),
			end:     ptr(now.Add(-2 * time.Hour)),
			wantErr: timeentry.ErrInvalidInterval,
		},
		{
			name:    "FutureStart",
			start:   now.Add(time.Minute),
			end:     ptr(now.Add(time.Hour)),
			wantErr: timeentry.ErrFutureStart,
		},
		{
			name:    "StaleStart",
			start:   now.Add(-31 * 24 * time.Hour),
			end:     ptr(now.Add(-31*24*time.Hour + time.Hour)),
			wantErr: timeentry.ErrStaleEntry,
		},
		{
			// An inverted interval in the future reports the interval
			// problem first.
			name:    "InvalidIntervalWinsOverFutureStart",
			start:   now.Add(2 * time.Hour),
			end:     ptr(now.Add(time.Hour)),
			wantErr: timeentry.ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := timeentry.CheckInterval(tt.start, tt.end, now, retention)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
