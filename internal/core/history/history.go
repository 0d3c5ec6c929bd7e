// Package history builds immutable roll-ups over bicycle counter measurements.
// A history is constructed once per data pull; every derived view is computed
// eagerly at construction and never mutated afterwards
package history

import (
	"sort"
	"time"

	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
)

// Daily aggregates one count per calendar day
type Daily struct {
	dayToCount   map[timerange.Day]int
	monthToCount map[timerange.Month]int
	yearToCount  map[timerange.Year]int
	total        int
	dayToCum     map[timerange.Day]int
	monthToCum   map[timerange.Month]int
	bestByDow    map[time.Weekday]int

	days []timerange.Day // ascending by start
}

// NewDaily builds a Daily history from per-day counts.
// Counts must be non-negative; an empty input yields a zero total and empty
// derived views
func NewDaily(dayToCount map[timerange.Day]int) (*Daily, error) {
	h := &Daily{
		dayToCount:   make(map[timerange.Day]int, len(dayToCount)),
		monthToCount: make(map[timerange.Month]int),
		yearToCount:  make(map[timerange.Year]int),
		dayToCum:     make(map[timerange.Day]int, len(dayToCount)),
		monthToCum:   make(map[timerange.Month]int),
		bestByDow:    make(map[time.Weekday]int),
		days:         make([]timerange.Day, 0, len(dayToCount)),
	}

	for day, count := range dayToCount {
		if count < 0 {
			return nil, perr.Validationf("negative count %d for day %s", count, day.Start().Format("2006-01-02"))
		}
		h.dayToCount[day] = count
		h.days = append(h.days, day)
	}
	sort.Slice(h.days, func(i, j int) bool { return h.days[i].Start().Before(h.days[j].Start()) })

	for _, day := range h.days {
		count := h.dayToCount[day]
		h.monthToCount[day.Month()] += count
		h.yearToCount[day.Year()] += count
		h.total += count
		if best, ok := h.bestByDow[day.Weekday()]; !ok || count > best {
			h.bestByDow[day.Weekday()] = count
		}
	}

	cum := 0
	for _, day := range h.days {
		cum += h.dayToCount[day]
		h.dayToCum[day] = cum
	}

	months := make([]timerange.Month, 0, len(h.monthToCount))
	for m := range h.monthToCount {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Start().Before(months[j].Start()) })
	cum = 0
	for _, m := range months {
		cum += h.monthToCount[m]
		h.monthToCum[m] = cum
	}

	return h, nil
}

// Total returns the sum of every daily count
func (h *Daily) Total() int { return h.total }

// Len returns the number of recorded days
func (h *Daily) Len() int { return len(h.days) }

// Count returns the count for a day
func (h *Daily) Count(d timerange.Day) (int, bool) {
	c, ok := h.dayToCount[d]
	return c, ok
}

// MonthCount returns the roll-up for a month
func (h *Daily) MonthCount(m timerange.Month) (int, bool) {
	c, ok := h.monthToCount[m]
	return c, ok
}

// YearCount returns the roll-up for a year
func (h *Daily) YearCount(y timerange.Year) (int, bool) {
	c, ok := h.yearToCount[y]
	return c, ok
}

// CumulativeByDay returns the running total up to and including a day
func (h *Daily) CumulativeByDay(d timerange.Day) (int, bool) {
	c, ok := h.dayToCum[d]
	return c, ok
}

// CumulativeByMonth returns the running total up to and including a month
func (h *Daily) CumulativeByMonth(m timerange.Month) (int, bool) {
	c, ok := h.monthToCum[m]
	return c, ok
}

// BestByWeekday returns the best daily count observed on a weekday.
// The second return is false for weekdays never observed; callers must not
// assume all seven buckets exist
func (h *Daily) BestByWeekday(w time.Weekday) (int, bool) {
	c, ok := h.bestByDow[w]
	return c, ok
}

// Days returns the recorded days in ascending start order
func (h *Daily) Days() []timerange.Day {
	out := make([]timerange.Day, len(h.days))
	copy(out, h.days)
	return out
}

// DayCounts returns a copy of the per-day counts
func (h *Daily) DayCounts() map[timerange.Day]int {
	out := make(map[timerange.Day]int, len(h.dayToCount))
	for d, c := range h.dayToCount {
		out[d] = c
	}
	return out
}

// MonthCountOfDay sums the counts of every recorded day sharing the target's
// month number, across years (the running month-to-date population)
func (h *Daily) MonthCountOfDay(target timerange.Day) int {
	total := 0
	for day, count := range h.dayToCount {
		if day.MonthNum() == target.MonthNum() {
			total += count
		}
	}
	return total
}

// Span returns the half-open interval from the first recorded day to just
// after the last one
func (h *Daily) Span() (timerange.Span, error) {
	if len(h.days) == 0 {
		return timerange.Span{}, perr.Validationf("empty history has no span")
	}
	return timerange.NewSpan(h.days[0].Start(), h.days[len(h.days)-1].End())
}
