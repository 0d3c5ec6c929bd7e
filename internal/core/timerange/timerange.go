// Package timerange provides immutable calendar-aligned time intervals at
// hour, day, month and year granularity, plus arbitrary spans.
// Construction validates alignment; all values normalize to UTC so they can
// serve as map keys
package timerange

import (
	"time"

	perr "velofact/internal/platform/errors"
)

// Kind discriminates range variants
type Kind uint8

// Range kinds
const (
	KindHour Kind = iota
	KindDay
	KindMonth
	KindYear
	KindSpan
)

// String returns a stable name for the kind
func (k Kind) String() string {
	switch k {
	case KindHour:
		return "hour"
	case KindDay:
		return "day"
	case KindMonth:
		return "month"
	case KindYear:
		return "year"
	case KindSpan:
		return "span"
	default:
		return "unknown"
	}
}

// Range is the common surface of all interval variants.
// Hour, Day and Span are half-open [start, end); Month and Year use
// calendar-field equality instead of end arithmetic
type Range interface {
	Kind() Kind
	Start() time.Time
	Contains(t time.Time) bool
}

// Hour is a single clock hour
type Hour struct{ start time.Time }

// Day is a single calendar day
type Day struct{ start time.Time }

// Month is a single calendar month
type Month struct{ start time.Time }

// Year is a single calendar year
type Year struct{ start time.Time }

// Span is a custom half-open interval, used for the full historical window
type Span struct{ start, end time.Time }

// normalize rebuilds t from its calendar fields in UTC so that equal instants
// compare equal regardless of source location or monotonic clock reading
func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// NewHour builds an Hour range; start must sit on an exact hour
func NewHour(start time.Time) (Hour, error) {
	if start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return Hour{}, perr.Validationf("instant %s is not an hour", start.Format(time.RFC3339))
	}
	return Hour{start: normalize(start)}, nil
}

// NewDay builds a Day range; start must have zero time-of-day fields
func NewDay(start time.Time) (Day, error) {
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return Day{}, perr.Validationf("instant %s is not a day", start.Format(time.RFC3339))
	}
	return Day{start: normalize(start)}, nil
}

// NewMonth builds a Month range; start must be a day-aligned first of month
func NewMonth(start time.Time) (Month, error) {
	if _, err := NewDay(start); err != nil {
		return Month{}, err
	}
	if start.Day() != 1 {
		return Month{}, perr.Validationf("instant %s is not a month", start.Format(time.RFC3339))
	}
	return Month{start: normalize(start)}, nil
}

// NewYear builds a Year range; start must be a month-aligned first of January
func NewYear(start time.Time) (Year, error) {
	if _, err := NewMonth(start); err != nil {
		return Year{}, err
	}
	if start.Month() != time.January {
		return Year{}, perr.Validationf("instant %s is not a year", start.Format(time.RFC3339))
	}
	return Year{start: normalize(start)}, nil
}

// NewSpan builds a custom half-open interval
func NewSpan(start, end time.Time) (Span, error) {
	s, e := normalize(start), normalize(end)
	if e.Before(s) {
		return Span{}, perr.Validationf("span end %s before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Span{start: s, end: e}, nil
}

// MustDay builds a Day and panics on misalignment, for tests and literals
func MustDay(year int, month time.Month, day int) Day {
	d, err := NewDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return d
}

// MustHour builds an Hour and panics on misalignment, for tests and literals
func MustHour(year int, month time.Month, day, hour int) Hour {
	h, err := NewHour(time.Date(year, month, day, hour, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return h
}

// Hour accessors

// Kind returns KindHour
func (h Hour) Kind() Kind { return KindHour }

// Start returns the first instant of the hour
func (h Hour) Start() time.Time { return h.start }

// End returns the first instant after the hour
func (h Hour) End() time.Time { return h.start.Add(time.Hour) }

// Contains reports whether t falls within [start, end)
func (h Hour) Contains(t time.Time) bool {
	t = normalize(t)
	return !t.Before(h.start) && t.Before(h.End())
}

// HourOfDay returns the 0..23 clock hour
func (h Hour) HourOfDay() int { return h.start.Hour() }

// Weekday returns the weekday the hour falls on
func (h Hour) Weekday() time.Weekday { return h.start.Weekday() }

// Day truncates to the containing day
func (h Hour) Day() Day {
	return Day{start: time.Date(h.start.Year(), h.start.Month(), h.start.Day(), 0, 0, 0, 0, time.UTC)}
}

// Day accessors

// Kind returns KindDay
func (d Day) Kind() Kind { return KindDay }

// Start returns midnight opening the day
func (d Day) Start() time.Time { return d.start }

// End returns midnight of the next day
func (d Day) End() time.Time { return d.start.AddDate(0, 0, 1) }

// Contains reports whether t falls within [start, end)
func (d Day) Contains(t time.Time) bool {
	t = normalize(t)
	return !t.Before(d.start) && t.Before(d.End())
}

// Month truncates to the containing month
func (d Day) Month() Month {
	return Month{start: time.Date(d.start.Year(), d.start.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// Year truncates to the containing year
func (d Day) Year() Year {
	return Year{start: time.Date(d.start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Weekday returns the weekday of the day
func (d Day) Weekday() time.Weekday { return d.start.Weekday() }

// YearNum returns the calendar year number
func (d Day) YearNum() int { return d.start.Year() }

// MonthNum returns the calendar month
func (d Day) MonthNum() time.Month { return d.start.Month() }

// Month accessors

// Kind returns KindMonth
func (m Month) Kind() Kind { return KindMonth }

// Start returns the first instant of the month
func (m Month) Start() time.Time { return m.start }

// Contains reports whether t falls in the same calendar month
func (m Month) Contains(t time.Time) bool {
	return m.start.Year() == t.Year() && m.start.Month() == t.Month()
}

// Year accessors

// Kind returns KindYear
func (y Year) Kind() Kind { return KindYear }

// Start returns the first instant of the year
func (y Year) Start() time.Time { return y.start }

// Contains reports whether t falls in the same calendar year
func (y Year) Contains(t time.Time) bool { return y.start.Year() == t.Year() }

// Span accessors

// Kind returns KindSpan
func (s Span) Kind() Kind { return KindSpan }

// Start returns the first instant of the span
func (s Span) Start() time.Time { return s.start }

// End returns the first instant after the span
func (s Span) End() time.Time { return s.end }

// Contains reports whether t falls within [start, end)
func (s Span) Contains(t time.Time) bool {
	t = normalize(t)
	return !t.Before(s.start) && t.Before(s.end)
}

// SameCalendarDay reports whether a and b share day, month and year
func SameCalendarDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
