package dateparse

import (
	"strconv"
	"strings"
	"time"
)

// Resolved is the outcome of one Resolve call. Zero fields are unresolved.
type Resolved struct {
	Year  int
	Month int
	Day   int

	// StartTime and EndTime hold time-of-day text as typed, e.g. "3:30pm".
	StartTime string
	EndTime   string

	// ExplicitYear is false when Year was inferred from the operating window.
	ExplicitYear bool
}

// IsZero reports whether no date field was resolved.
func (d Resolved) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// YMD returns "YYYY", "YYYY-MM" or "YYYY-MM-DD" depending on which fields
// were resolved. Unresolved trailing fields are omitted, never defaulted.
func (d Resolved) YMD() string {
	if d.Year == 0 {
		return ""
	}
	s := Pad(d.Year, 4)
	if d.Month == 0 {
		return s
	}
	s += "-" + Pad(d.Month, 2)
	if d.Day == 0 {
		return s
	}
	return s + "-" + Pad(d.Day, 2)
}

// Short returns a compact display form: "Tue May 05" when year, month and day
// are all known, "May 05" when only month and day are, and "" otherwise.
func (d Resolved) Short() string {
	if d.Month < 1 || d.Month > 12 || d.Day == 0 {
		return ""
	}
	if d.Year == 0 {
		return time.Month(d.Month).String()[:3] + " " + Pad(d.Day, 2)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Format("Mon Jan 02")
}

// Pad left-pads n with zeros to width. Values wider than width keep only
// their rightmost digits: Pad(123, 2) == "23".
func Pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) > width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
