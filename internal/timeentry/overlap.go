package timeentry

import "time"

// Overlaps reports whether the half-open intervals [start, end) and
// [otherStart, otherEnd) intersect. A nil end is a running timer and
// extends to infinity, so it overlaps everything at or after its
// start. Intervals that merely touch do not overlap: an entry ending
// at 11:00 and one starting at 11:00 coexist.
//
// This is the predicate the FindOverlapping query evaluates in SQL;
// the two must agree.
func Overlaps(start time.Time, end *time.Time, otherStart time.Time, otherEnd *time.Time) bool {
	startsBeforeOtherEnds := otherEnd == nil || start.Before(*otherEnd)
	otherStartsBeforeEnds := end == nil || otherStart.Before(*end)

	return startsBeforeOtherEnds && otherStartsBeforeEnds
}
