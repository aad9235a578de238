package timeentry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
)

func TestOverlaps(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC)
	}

	type testCase struct {
		name       string
		start      time.Time
		end        *time.Time
		otherStart time.Time
		otherEnd   *time.Time
		want       bool
	}

	tests := []testCase{
		{
			name:       "PartialOverlap",
			start:      at(10, 0),
			end:        ptr(at(12, 0)),
			otherStart: at(9, 0),
			otherEnd:   ptr(at(11, 0)),
			want:       true,
		},
		{
			name:       "TouchingIntervalsCoexist",
			start:      at(11, 0),
			end:        ptr(at(12, 0)),
			otherStart: at(9, 0),
			otherEnd:   ptr(at(11, 0)),
			want:       false,
		},
		{
			name:       "TouchingIntervalsCoexistReversed",
			start:      at(9, 0),
			end:        ptr(at(11, 0)),
			otherStart: at(11, 0),
			otherEnd:   ptr(at(12, 0)),
			want:       false,
		},
		{
			name:       "Containment",
			start:      at(9, 0),
			end:        ptr(at(17, 0)),
			otherStart: at(10, 0),
			otherEnd:   ptr(at(11, 0)),
			want:       true,
		},
		{
			name:       "IdenticalIntervals",
			start:      at(9, 0),
			end:        ptr(at(10, 0)),
			otherStart: at(9, 0),
			otherEnd:   ptr(at(10, 0)),
			want:       true,
		},
		{
			name:       "DisjointIntervals",
			start:      at(9, 0),
			end:        ptr(at(10, 0)),
			otherStart: at(14, 0),
			otherEnd:   ptr(at(15, 0)),
			want:       false,
		},
		{
			name:       "RunningTimerOverlapsEverythingAfterItsStart",
			start:      at(9, 0),
			end:        nil,
			otherStart: at(15, 0),
			otherEnd:   ptr(at(16, 0)),
			want:       true,
		},
		{
			name:       "RunningTimerDoesNotReachBackwards",
			start:      at(9, 0),
			end:        nil,
			otherStart: at(7, 0),
			otherEnd:   ptr(at(9, 0)),
			want:       false,
		},
		{
			name:       "ClosedIntervalBeforeRunningTimerStart",
			start:      at(7, 0),
			end:        ptr(at(8, 0)),
			otherStart: at(9, 0),
			otherEnd:   nil,
			want:       false,
		},
		{
			name:       "TwoRunningTimersAlwaysOverlap",
			start:      at(9, 0),
			end:        nil,
			otherStart: at(18, 0),
			otherEnd:   nil,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeentry.Overlaps(tt.start, tt.end, tt.otherStart, tt.otherEnd)
			assert.Equal(t, tt.want, got)

			// The predicate is symmetric.
			assert.Equal(t, tt.want, timeentry.Overlaps(tt.otherStart, tt.otherEnd, tt.start, tt.end))
		})
	}
}
