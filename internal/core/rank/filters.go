package rank

import (
	"velofact/internal/core/timerange"
)

// DayComparator decides whether a day belongs to the comparison population of
// a target day
type DayComparator func(day, target timerange.Day) bool

// ShareYear keeps days of the target's calendar year
func ShareYear(day, target timerange.Day) bool { return day.YearNum() == target.YearNum() }

// ShareMonth keeps days of the target's month number, across years
func ShareMonth(day, target timerange.Day) bool { return day.MonthNum() == target.MonthNum() }

// ShareWeekday keeps days falling on the target's weekday; sameYear further
// restricts to the target's calendar year
func ShareWeekday(sameYear bool) DayComparator {
	return func(day, target timerange.Day) bool {
		if day.Weekday() != target.Weekday() {
			return false
		}
		return !sameYear || day.YearNum() == target.YearNum()
	}
}

// Population collects the counts of every day matching the comparator
func Population(counts map[timerange.Day]int, target timerange.Day, cmp DayComparator) []int {
	out := make([]int, 0, len(counts))
	for day, count := range counts {
		if cmp(day, target) {
			out = append(out, count)
		}
	}
	return out
}

// DayWithTies ranks the target day's count among all comparator-matching days
func DayWithTies(counts map[timerange.Day]int, target timerange.Day, cmp DayComparator) (rank, ties int) {
	return WithTies(counts[target], Population(counts, target, cmp))
}
