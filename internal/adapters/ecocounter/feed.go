package ecocounter

import (
	"encoding/json"
	"strconv"
	"time"

	"velofact/internal/core/history"
	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
)

// The feed starts the day after the counter went live and its last element
// covers the in-progress day, so parsing prepends the missing opening day at
// zero and drops the trailing element
const (
	feedDateLayout  = "01/02/2006"
	feedFirstDay    = "09/02/2019"
	feedMissingDay  = "09/01/2019"
	feedMissingZero = 0
)

// cell tolerates both the string and bare-number encodings the feed has
// shipped for counts
type cell struct {
	raw string
}

func (c *cell) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.raw = s
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	c.raw = string(data)
	return nil
}

// ParseFeed validates the raw feed body and builds the daily history
func ParseFeed(body []byte) (*history.Daily, error) {
	var pairs [][]cell
	if err := json.Unmarshal(body, &pairs); err != nil {
		return nil, perr.JSONErrf("ecocounter feed is not a list of pairs: %v", err)
	}
	if len(pairs) == 0 {
		return nil, perr.Validationf("ecocounter feed is empty")
	}
	if len(pairs[0]) == 0 {
		return nil, perr.Validationf("ecocounter feed starts with an empty element")
	}
	if got := pairs[0][0].raw; got != feedFirstDay {
		return nil, perr.Validationf("expected first day of data %s, received %s", feedFirstDay, got)
	}
	for i, p := range pairs[:len(pairs)-1] {
		if len(p) != 2 {
			return nil, perr.Validationf("expected a list of pairs, element %d has length %d", i, len(p))
		}
	}

	// prepend the opening day, drop the in-progress trailing element
	kept := append([][]cell{{{raw: feedMissingDay}, {raw: strconv.Itoa(feedMissingZero)}}}, pairs[:len(pairs)-1]...)

	dayToCount := make(map[timerange.Day]int, len(kept))
	for _, p := range kept {
		day, count, err := parsePair(p)
		if err != nil {
			return nil, err
		}
		dayToCount[day] = count
	}
	return history.NewDaily(dayToCount)
}

func parsePair(p []cell) (timerange.Day, int, error) {
	if len(p) != 2 {
		return timerange.Day{}, 0, perr.Validationf("need a pair, received %d cells", len(p))
	}
	ts, err := time.ParseInLocation(feedDateLayout, p[0].raw, time.UTC)
	if err != nil {
		return timerange.Day{}, 0, perr.Validationf("bad feed date %q: %v", p[0].raw, err)
	}
	day, err := timerange.NewDay(ts)
	if err != nil {
		return timerange.Day{}, 0, err
	}
	f, err := strconv.ParseFloat(p[1].raw, 64)
	if err != nil {
		return timerange.Day{}, 0, perr.Validationf("bad feed count %q: %v", p[1].raw, err)
	}
	return day, int(f), nil
}
