package history

import (
	"sort"
	"time"

	"velofact/internal/core/timerange"
)

// HourOfWeek keys the best-count view by clock hour and weekday
type HourOfWeek struct {
	Hour    int
	Weekday time.Weekday
}

// Hourly aggregates one count per clock hour. It derives a Daily history by
// summing each day's recorded hours, plus hourly cumulative sums and the best
// count seen for every (hour, weekday) pair
type Hourly struct {
	*Daily

	hourToCount map[timerange.Hour]int
	hourToCum   map[timerange.Hour]int
	bestByHow   map[HourOfWeek]int
}

// NewHourly builds an Hourly history from per-hour counts
func NewHourly(hourToCount map[timerange.Hour]int) (*Hourly, error) {
	dayToCount := make(map[timerange.Day]int)
	for hour, count := range hourToCount {
		dayToCount[hour.Day()] += count
	}
	daily, err := NewDaily(dayToCount)
	if err != nil {
		return nil, err
	}

	h := &Hourly{
		Daily:       daily,
		hourToCount: make(map[timerange.Hour]int, len(hourToCount)),
		hourToCum:   make(map[timerange.Hour]int, len(hourToCount)),
		bestByHow:   make(map[HourOfWeek]int),
	}

	hours := make([]timerange.Hour, 0, len(hourToCount))
	for hour, count := range hourToCount {
		h.hourToCount[hour] = count
		hours = append(hours, hour)
		key := HourOfWeek{Hour: hour.HourOfDay(), Weekday: hour.Weekday()}
		if best, ok := h.bestByHow[key]; !ok || count > best {
			h.bestByHow[key] = count
		}
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Start().Before(hours[j].Start()) })

	cum := 0
	for _, hour := range hours {
		cum += h.hourToCount[hour]
		h.hourToCum[hour] = cum
	}

	return h, nil
}

// HourCount returns the count for an hour
func (h *Hourly) HourCount(hr timerange.Hour) (int, bool) {
	c, ok := h.hourToCount[hr]
	return c, ok
}

// CumulativeByHour returns the running total up to and including an hour
func (h *Hourly) CumulativeByHour(hr timerange.Hour) (int, bool) {
	c, ok := h.hourToCum[hr]
	return c, ok
}

// BestByHourOfWeek returns the best count seen for an (hour, weekday) pair
func (h *Hourly) BestByHourOfWeek(key HourOfWeek) (int, bool) {
	c, ok := h.bestByHow[key]
	return c, ok
}
