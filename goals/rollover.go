package goals

import (
	"time"

	"clementus360/goal-tracker/types"
)

// WeekBucket returns the Monday that starts t's week, as a date string.
// Sunday counts as the last day of the previous week.
func WeekBucket(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	return DateString(monday)
}

// Rollover moves an unfinished thisWeek goal into nextWeek when the week
// bucket has changed since it was last evaluated. Any other goal just gets
// its bucket stamped. changed reports whether anything was modified.
func Rollover(g types.Goal, now time.Time) (out types.Goal, changed bool) {
	current := WeekBucket(now)
	if g.Meta != nil && g.Meta.WeeklyBucket == current {
		return g, false
	}

	out = g.Clone()
	meta := DefaultMeta(current)
	if out.Meta != nil {
		meta = *out.Meta
	}

	if meta.WeeklyStatus == types.ThisWeek && !out.Completed {
		meta.WeeklyStatus = types.NextWeek
		meta.CarryOverCount++
	}
	meta.WeeklyBucket = current
	out.Meta = &meta
	return out, true
}
