// Package domain holds DTOs for digest service contracts
package domain

import (
	"time"

	"golang.org/x/text/language"
)

// ComposeInput pins the language and the composition instant.
// Now determines which day counts as yesterday, callers pass the clock
// so runs stay reproducible
type ComposeInput struct {
	Lang language.Tag
	Now  time.Time
}

// Report is one composed digest ready for publication
type Report struct {
	RunID      string    `json:"run_id"`
	Day        string    `json:"day"`
	Lang       string    `json:"lang"`
	Sentence   string    `json:"sentence"`
	FactCount  int       `json:"fact_count"`
	ComposedAt time.Time `json:"composed_at"`
}

// Summary describes the fetched count history at a glance.
// Year and month totals are scoped to the last observed day
type Summary struct {
	Days          int            `json:"days"`
	Total         int            `json:"total"`
	YearTotal     int            `json:"year_total"`
	MonthTotal    int            `json:"month_total"`
	FirstDay      string         `json:"first_day"`
	LastDay       string         `json:"last_day"`
	BestByWeekday map[string]int `json:"best_by_weekday"`
}
