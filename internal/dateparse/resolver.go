// Package dateparse turns loosely typed date phrases ("May 5", "5/5/2020",
// "May 5th at 3pm") into year-month-day values.
//
// A Resolver carries session state across calls: the operating year window
// used to infer a missing year, and whether dates roll forward into the
// future. It is not safe for concurrent use.
package dateparse

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// secondHalf is the first month resolved to the earlier year of a two-year window.
const secondHalf = 7

// Resolver resolves date phrases against an operating year window.
type Resolver struct {
	years  []int
	future bool
	now    func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the current time source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithYearWindow sets the initial operating year window.
func WithYearWindow(years ...int) Option {
	return func(r *Resolver) { r.SetYearWindow(years...) }
}

// WithFuture sets the initial future flag.
func WithFuture(future bool) Option {
	return func(r *Resolver) { r.future = future }
}

// NewResolver creates a Resolver. Without a year window the current
// calendar year is used.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetYearWindow sets the one- or two-year operating window. Extra years are
// ignored; an empty call clears the window.
func (r *Resolver) SetYearWindow(years ...int) {
	w := slices.Clone(years)
	slices.Sort(w)
	w = slices.Compact(w)
	if len(w) > 2 {
		w = w[:2]
	}
	r.years = w
}

// YearWindow returns a copy of the operating year window.
func (r *Resolver) YearWindow() []int {
	return slices.Clone(r.years)
}

// SetFuture controls whether inferred years roll forward so that the date
// does not fall before the current month.
func (r *Resolver) SetFuture(future bool) { r.future = future }

// Future reports the future flag.
func (r *Resolver) Future() bool { return r.future }

// YMD is shorthand for Resolve(text).YMD().
func (r *Resolver) YMD(text string) string {
	return r.Resolve(text).YMD()
}

// Resolve parses text. Fields that cannot be determined are left zero.
func (r *Resolver) Resolve(text string) Resolved {
	s := &scan{runes: []rune(text)}
	s.run()

	if s.out.Year == 0 && s.out.Month != 0 {
		s.out.Year = r.inferYear(s.out.Month)
	}
	if s.out.Year != 0 && s.out.Month != 0 && s.out.Day > daysIn(s.out.Year, s.out.Month) {
		s.out.Day = 0
	}
	return s.out
}

func (r *Resolver) inferYear(month int) int {
	now := r.now()

	var year int
	switch len(r.years) {
	case 0:
		year = now.Year()
	case 1:
		year = r.years[0]
	default:
		if month < secondHalf {
			year = r.years[1]
		} else {
			year = r.years[0]
		}
	}

	if r.future {
		for year < now.Year() || (year == now.Year() && month < int(now.Month())) {
			year++
		}
	}
	return year
}

// scan holds the per-call state of one Resolve.
type scan struct {
	runes []rune
	out   Resolved

	monthNamed     bool
	monthIsDigits  bool
	lookingForTime bool
	inEnd          bool
	afterDay       bool
	prevSep        rune
	daySep         rune // separator in front of the day digits
}

func (s *scan) run() {
	for i := 0; i < len(s.runes); {
		c := s.runes[i]
		switch {
		case unicode.IsDigit(c):
			j := s.span(i, unicode.IsDigit)
			s.digits(string(s.runes[i:j]), s.timeFollows(j))
			s.prevSep = 0
			i = j
		case unicode.IsLetter(c):
			if word, end, ok := s.meridiem(i); ok {
				s.letters(word)
				s.prevSep = 0
				i = end
				continue
			}
			j := s.span(i, unicode.IsLetter)
			s.letters(strings.ToLower(string(s.runes[i:j])))
			s.prevSep = 0
			i = j
		case c == ':':
			if s.lookingForTime {
				s.appendTime(":")
			}
			i++
		case c == ',':
			if s.afterDay {
				s.lookingForTime = true
			}
			s.afterDay = false
			i++
		case c == '-':
			if s.lookingForTime && s.out.StartTime != "" {
				s.inEnd = true
			}
			s.prevSep = c
			i++
		default:
			if c == '/' || c == '.' {
				s.prevSep = c
			}
			i++
		}
	}
}

func (s *scan) span(i int, f func(rune) bool) int {
	j := i
	for j < len(s.runes) && f(s.runes[j]) {
		j++
	}
	return j
}

// timeFollows reports whether the digit run ending at j is a time of day:
// it is followed by a colon or by "am"/"pm".
func (s *scan) timeFollows(j int) bool {
	if j < len(s.runes) && s.runes[j] == ':' {
		return true
	}
	if j < len(s.runes) && s.runes[j] == ' ' {
		j++
	}
	_, _, ok := s.meridiem(j)
	return ok
}

// meridiem matches "am", "pm", "a.m." or "p.m." at i and returns the
// normalized word and the index just past it.
func (s *scan) meridiem(i int) (string, int, bool) {
	at := func(k int) rune {
		if k < len(s.runes) {
			return unicode.ToLower(s.runes[k])
		}
		return 0
	}
	c := at(i)
	if c != 'a' && c != 'p' {
		return "", i, false
	}
	word := string(c) + "m"
	switch {
	case at(i+1) == 'm' && !unicode.IsLetter(at(i+2)):
		return word, i + 2, true
	case at(i+1) == '.' && at(i+2) == 'm' && !unicode.IsLetter(at(i+3)):
		end := i + 3
		if at(end) == '.' {
			end++
		}
		return word, end, true
	}
	return "", i, false
}

func (s *scan) digits(run string, isTime bool) {
	s.afterDay = false
	n, err := strconv.Atoi(run)
	if err != nil {
		return
	}

	if isTime && n <= 2000 {
		s.lookingForTime = true
	}

	switch {
	case n > 2000:
		s.setYear(n, run)
	case s.lookingForTime:
		s.appendTime(run)
	case n == 0:
	case n > 31:
		s.setYear(n, run)
	case s.out.Month != 0 && s.out.Day != 0 && (len(run) >= 4 || s.numericDate()):
		s.setYear(n, run)
	case s.out.Day != 0 && s.prevSep == '-':
		// end of a day range such as "May 5-7"; the first day stands
	case n > 12 || s.out.Month != 0:
		s.out.Day = n
		s.daySep = s.prevSep
		s.afterDay = true
	default:
		s.out.Month = n
		s.monthIsDigits = true
	}
}

// numericDate reports whether the digit run being read is the third part of
// an all-digit date with one separator, as in "5/5/25" or "5-5-25".
func (s *scan) numericDate() bool {
	return s.monthIsDigits && (s.prevSep == '/' || s.prevSep == '-') && s.daySep == s.prevSep
}

func (s *scan) setYear(n int, run string) {
	if len(run) <= 2 {
		if n < 70 {
			n += 2000
		} else {
			n += 1900
		}
	}
	s.out.Year = n
	s.out.ExplicitYear = true
}

func (s *scan) letters(run string) {
	switch run {
	case "at", "from":
		s.lookingForTime = true
	case "am", "pm":
		if s.out.EndTime != "" {
			s.out.EndTime += run
		} else {
			s.out.StartTime += run
		}
	case "to":
		if s.out.StartTime != "" {
			s.lookingForTime = true
			s.inEnd = true
		}
	case "st", "nd", "rd", "th":
		// ordinal suffix; a following comma still belongs to the day
		return
	default:
		s.month(run)
	}
	s.afterDay = false
}

func (s *scan) month(run string) {
	if s.monthNamed || (s.lookingForTime && s.out.Month != 0) {
		return
	}
	if s.monthIsDigits && len(run) < 3 {
		return
	}
	for i, name := range monthNames {
		if !strings.HasPrefix(name, run) {
			continue
		}
		if s.monthIsDigits && s.out.Day == 0 {
			s.out.Day = s.out.Month
		}
		s.out.Month = i + 1
		s.monthNamed = true
		s.monthIsDigits = false
		return
	}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s *scan) appendTime(text string) {
	if s.inEnd {
		s.out.EndTime += text
	} else {
		s.out.StartTime += text
	}
}
