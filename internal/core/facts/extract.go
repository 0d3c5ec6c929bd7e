package facts

import (
	"velofact/internal/core/history"
	"velofact/internal/core/rank"
	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
)

// Extract derives every candidate fact about target from h.
// The containing range must cover the whole target day and the history must
// carry a count for it; both are hard validation failures, not empty results.
// All facts come out at priority 0 in a fixed order so selection stays
// reproducible under a seeded source
func Extract(h *history.Daily, within timerange.Range, target timerange.Day) ([]Fact, error) {
	if !within.Contains(target.Start()) || !within.Contains(target.End()) {
		return nil, perr.Validationf("range %s does not contain target day %s",
			within.Kind(), target.Start().Format("2006-01-02"))
	}
	count, ok := h.Count(target)
	if !ok {
		return nil, perr.Validationf("no count recorded for %s", target.Start().Format("2006-01-02"))
	}

	counts := h.DayCounts()
	facts := make([]Fact, 0, 6)

	facts = append(facts, Fact{Kind: KindDayTotal, Target: target, Count: count})

	r, ties := rank.DayWithTies(counts, target, rank.ShareWeekday(true))
	facts = append(facts, Fact{
		Kind: KindWeekdayRankYear, Target: target, Count: count,
		Rank: r, Ties: ties, Weekday: target.Weekday(),
	})

	r, ties = rank.DayWithTies(counts, target, rank.ShareWeekday(false))
	facts = append(facts, Fact{
		Kind: KindWeekdayRankHistory, Target: target, Count: count,
		Rank: r, Ties: ties, Weekday: target.Weekday(),
	})

	r, ties = rank.DayWithTies(counts, target, rank.ShareYear)
	facts = append(facts, Fact{
		Kind: KindDayRankYear, Target: target, Count: count, Rank: r, Ties: ties,
	})

	r, ties = rank.DayWithTies(counts, target, rank.ShareMonth)
	facts = append(facts, Fact{
		Kind: KindDayRankMonth, Target: target, Count: count, Rank: r, Ties: ties,
	})

	facts = append(facts, Fact{
		Kind: KindMonthToDateTotal, Target: target, Count: h.MonthCountOfDay(target),
	})

	return facts, nil
}

// HighestPriority keeps only the facts at the maximum priority present.
// An empty input is a validation error: a day with no facts at all means the
// extraction upstream was skipped, not that there is nothing to say
func HighestPriority(facts []Fact) ([]Fact, error) {
	if len(facts) == 0 {
		return nil, perr.Validationf("no facts to select from")
	}
	best := facts[0].Priority
	for _, f := range facts[1:] {
		if f.Priority > best {
			best = f.Priority
		}
	}
	out := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if f.Priority == best {
			out = append(out, f)
		}
	}
	return out, nil
}
