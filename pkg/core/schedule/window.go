package schedule

import (
	"time"

	"github.com/juliagrant/careshift/pkg/core/model"
)

// Overlaps reports whether two half-open shift windows intersect.
// Touching endpoints (one shift ending exactly when another starts)
// do not count as overlap.
func Overlaps(a, b model.ShiftWindow) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ISOWeekBounds returns the Monday-aligned week containing t as a
// half-open [weekStart, weekEnd) pair of midnight timestamps in t's
// location.
func ISOWeekBounds(t time.Time) (time.Time, time.Time) {
	day := DateOf(t)
	// Go weekdays start on Sunday; shift so Monday is offset 0
	offset := (int(day.Weekday()) + 6) % 7
	weekStart := day.AddDate(0, 0, -offset)
	return weekStart, weekStart.AddDate(0, 0, 7)
}

// DateOf truncates t to midnight in its own location, giving the
// calendar day used for working-day bucketing.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
