// Package facts extracts candidate statistical statements about a target day
// and renders one of them as a localized sentence.
// Facts snapshot their numbers at extraction time and never look back at the
// history they came from
package facts

import (
	"time"

	"velofact/internal/core/lexicon"
	"velofact/internal/core/timerange"
)

// Kind discriminates fact variants
type Kind uint8

// Fact kinds. Extraction currently emits the day total, the month-to-date
// total, both weekday ranks and both day ranks; the remaining kinds carry
// render configuration for future extraction passes
const (
	KindDayTotal Kind = iota
	KindMonthToDateTotal
	KindWeekdayRankYear
	KindWeekdayRankHistory
	KindDayRankYear
	KindDayRankMonth
	KindDayRankHistory
	KindMonthRankYear
	KindMonthRankHistory
	KindYearRankHistory
)

// String returns a stable name for the kind
func (k Kind) String() string {
	switch k {
	case KindDayTotal:
		return "day_total"
	case KindMonthToDateTotal:
		return "month_to_date_total"
	case KindWeekdayRankYear:
		return "weekday_rank_year"
	case KindWeekdayRankHistory:
		return "weekday_rank_history"
	case KindDayRankYear:
		return "day_rank_year"
	case KindDayRankMonth:
		return "day_rank_month"
	case KindDayRankHistory:
		return "day_rank_history"
	case KindMonthRankYear:
		return "month_rank_year"
	case KindMonthRankHistory:
		return "month_rank_history"
	case KindYearRankHistory:
		return "year_rank_history"
	default:
		return "unknown"
	}
}

// Fact is one candidate statement about a target day.
// Count, Rank, Ties and Weekday are snapshots taken at extraction time;
// higher Priority wins selection (every current fact sits at 0)
type Fact struct {
	Kind     Kind
	Priority int
	Target   timerange.Day
	Count    int
	Rank     int
	Ties     int
	Weekday  time.Weekday
}

// gender selects the qualifier agreement in gendered languages
type gender uint8

const (
	genderMale gender = iota
	genderFemale
)

// style selects the sentence shape
type style uint8

const (
	styleTotal style = iota
	styleWeekdayRank
	styleDayRank
)

// renderConfig is the per-kind configuration consumed by the one generic
// renderer: sentence shape, scope suffix key, qualifier gender
type renderConfig struct {
	style  style
	scope  lexicon.Key
	gender gender
}

var renderConfigs = map[Kind]renderConfig{
	KindDayTotal:         {styleTotal, lexicon.KeyHistoricalTotal, genderMale},
	KindMonthToDateTotal: {styleTotal, lexicon.KeyMonthTotal, genderMale},

	KindWeekdayRankYear:    {styleWeekdayRank, lexicon.KeySinceBeginningOfYear, genderMale},
	KindWeekdayRankHistory: {styleWeekdayRank, lexicon.KeySinceBeginning, genderMale},

	KindDayRankYear:      {styleDayRank, lexicon.KeyDayOfYear, genderMale},
	KindDayRankMonth:     {styleDayRank, lexicon.KeyDayOfMonth, genderMale},
	KindDayRankHistory:   {styleDayRank, lexicon.KeyDayOfHistory, genderMale},
	KindMonthRankYear:    {styleDayRank, lexicon.KeyMonthOfYear, genderMale},
	KindMonthRankHistory: {styleDayRank, lexicon.KeyMonthOfHistory, genderFemale},
	KindYearRankHistory:  {styleDayRank, lexicon.KeyYearOfHistory, genderMale},
}
