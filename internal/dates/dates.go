// Package dates parses and formats the calendar dates used by expenses
// and query filters.
package dates

import "time"

// Layout is the only accepted date format (YYYY-MM-DD).
const Layout = "2006-01-02"

// Parse converts a YYYY-MM-DD string into a UTC midnight date. It reports
// false for an empty or malformed string instead of returning an error.
func Parse(s string) (time.Time, bool) {
	if len(s) != len(Layout) {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParsePtr is Parse for optional filter bounds: nil means "not set".
func ParsePtr(s string) *time.Time {
	t, ok := Parse(s)
	if !ok {
		return nil
	}
	return &t
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate drops the time of day, keeping the calendar date of t in its
// own location, and returns it as UTC midnight.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

// Today returns the calendar date of the clock's current time.
func (c Clock) Today() time.Time {
	if c == nil {
		return Truncate(time.Now())
	}
	return Truncate(c())
}
