package goals

import "time"

const dateLayout = "2006-01-02"

// Clock abstracts time.Now so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// DateString formats t as a calendar date in t's own location.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// DaysBetween returns the whole-day difference to - from. Both arguments are
// calendar dates; ok is false when either fails to parse.
func DaysBetween(from, to string) (int, bool) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return 0, false
	}
	return int(end.Sub(start).Hours() / 24), true
}
