package timeentry

import "time"

// CheckInterval enforces temporal sanity on a proposed interval.
// The checks are independent; they run in a fixed order so the caller
// always sees interval validity first, then the future-start policy,
// then staleness.
func CheckInterval(start time.Time, end *time.Time, now time.Time, retention time.Duration) error {
	if end != nil && !end.After(start) {
		return ErrInvalidInterval
	}

	if start.After(now) {
		return ErrFutureStart
	}

	if start.Before(now.Add(-retention)) {
		return ErrStaleEntry
	}

	return nil
}
