package facts

import (
	"math/rand"
	"testing"
	"time"

	"golang.org/x/text/language"

	"velofact/internal/core/history"
	"velofact/internal/core/lexicon"
	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
	"velofact/internal/platform/testkit"
)

func fixtureHistory(t *testing.T) *history.Daily {
	t.Helper()
	h, err := history.NewDaily(map[timerange.Day]int{
		timerange.MustDay(2019, time.September, 1): 0,
		timerange.MustDay(2019, time.September, 2): 5,
		timerange.MustDay(2019, time.September, 3): 5,
		timerange.MustDay(2019, time.September, 4): 3,
	})
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	return h
}

func fixtureLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Load()
	if err != nil {
		t.Fatalf("lexicon.Load: %v", err)
	}
	return lex
}

func span(t *testing.T, start, end time.Time) timerange.Span {
	t.Helper()
	s, err := timerange.NewSpan(start, end)
	if err != nil {
		t.Fatalf("NewSpan: %v", err)
	}
	return s
}

func TestExtract(t *testing.T) {
	h := fixtureHistory(t)
	target := timerange.MustDay(2019, time.September, 3)
	within := span(t,
		time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.September, 5, 0, 0, 0, 0, time.UTC),
	)

	facts, err := Extract(h, within, target)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(facts) != 6 {
		t.Fatalf("got %d facts, want 6", len(facts))
	}

	byKind := make(map[Kind]Fact, len(facts))
	for _, f := range facts {
		if f.Priority != 0 {
			t.Fatalf("fact %s has priority %d, want 0", f.Kind, f.Priority)
		}
		byKind[f.Kind] = f
	}

	if got := byKind[KindDayTotal].Count; got != 5 {
		t.Fatalf("day total = %d, want 5", got)
	}
	if got := byKind[KindMonthToDateTotal].Count; got != 13 {
		t.Fatalf("month-to-date total = %d, want 13", got)
	}

	// 2019-09-03 is the only Tuesday in the fixture
	wr := byKind[KindWeekdayRankYear]
	if wr.Rank != 0 || wr.Ties != 0 || wr.Weekday != time.Tuesday {
		t.Fatalf("weekday rank year = %+v, want rank 0 ties 0 Tuesday", wr)
	}
	wr = byKind[KindWeekdayRankHistory]
	if wr.Rank != 0 || wr.Ties != 0 {
		t.Fatalf("weekday rank history = %+v, want rank 0 ties 0", wr)
	}

	// shares the top count with 09-02
	dr := byKind[KindDayRankYear]
	if dr.Rank != 0 || dr.Ties != 1 {
		t.Fatalf("day rank year = %+v, want rank 0 ties 1", dr)
	}
	dr = byKind[KindDayRankMonth]
	if dr.Rank != 0 || dr.Ties != 1 {
		t.Fatalf("day rank month = %+v, want rank 0 ties 1", dr)
	}
}

func TestExtractRejectsTargetOutsideRange(t *testing.T) {
	h := fixtureHistory(t)
	target := timerange.MustDay(2019, time.September, 3)

	// range ends exactly at the target's start, so the day is not covered
	within := span(t,
		time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.September, 3, 0, 0, 0, 0, time.UTC),
	)
	_, err := Extract(h, within, target)
	testkit.MustCode(t, err, perr.ErrorCodeValidation)

	// range ends mid-day: target.End() falls outside
	within = span(t,
		time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.September, 3, 12, 0, 0, 0, time.UTC),
	)
	_, err = Extract(h, within, target)
	testkit.MustCode(t, err, perr.ErrorCodeValidation)
}

func TestExtractRejectsUnrecordedDay(t *testing.T) {
	h := fixtureHistory(t)
	within := span(t,
		time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.October, 1, 0, 0, 0, 0, time.UTC),
	)
	_, err := Extract(h, within, timerange.MustDay(2019, time.September, 10))
	testkit.MustCode(t, err, perr.ErrorCodeValidation)
}

func TestHighestPriority(t *testing.T) {
	_, err := HighestPriority(nil)
	testkit.MustCode(t, err, perr.ErrorCodeValidation)

	facts := []Fact{
		{Kind: KindDayTotal, Priority: 0},
		{Kind: KindDayRankYear, Priority: 2},
		{Kind: KindDayRankMonth, Priority: 2},
		{Kind: KindMonthToDateTotal, Priority: 1},
	}
	top, err := HighestPriority(facts)
	if err != nil {
		t.Fatalf("HighestPriority: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d facts, want 2", len(top))
	}
	for _, f := range top {
		if f.Priority != 2 {
			t.Fatalf("fact %s kept with priority %d", f.Kind, f.Priority)
		}
	}
}

func TestRenderSentences(t *testing.T) {
	lex := fixtureLexicon(t)
	target := timerange.MustDay(2019, time.September, 3)
	pub := time.Date(2019, time.September, 4, 7, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		fact Fact
		lang language.Tag
		want string
	}{
		{
			name: "day total en",
			fact: Fact{Kind: KindDayTotal, Target: target, Count: 5},
			lang: language.English,
			want: "5 cyclists counted since the counter was installed.",
		},
		{
			name: "month to date fr",
			fact: Fact{Kind: KindMonthToDateTotal, Target: target, Count: 13},
			lang: language.French,
			want: "13 cyclistes comptés ce mois-ci.",
		},
		{
			name: "weekday best en",
			fact: Fact{Kind: KindWeekdayRankYear, Target: target, Rank: 0, Weekday: time.Tuesday},
			lang: language.English,
			want: "best Tuesday since the beginning of the year.",
		},
		{
			name: "weekday second fr",
			fact: Fact{Kind: KindWeekdayRankHistory, Target: target, Rank: 1, Weekday: time.Tuesday},
			lang: language.French,
			want: "deuxième meilleur mardi depuis la mise en service du compteur.",
		},
		{
			name: "day rank yesterday en",
			fact: Fact{Kind: KindDayRankYear, Target: target, Rank: 0},
			lang: language.English,
			want: "Yesterday: best day of the year",
		},
		{
			name: "day rank fr",
			fact: Fact{Kind: KindDayRankMonth, Target: target, Rank: 2},
			lang: language.French,
			want: "Hier: troisième meilleur jour du mois",
		},
		{
			name: "numeral ordinal en",
			fact: Fact{Kind: KindDayRankHistory, Target: target, Rank: 4},
			lang: language.English,
			want: "Yesterday: 4th best day since the beginning of the count",
		},
		{
			name: "female agreement fr",
			fact: Fact{Kind: KindMonthRankHistory, Target: target, Rank: 1},
			lang: language.French,
			want: "Hier: deuxième meilleure mois depuis la mise en service du compteur",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.fact, tc.lang, pub, lex)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderTodayLabel(t *testing.T) {
	lex := fixtureLexicon(t)
	target := timerange.MustDay(2019, time.September, 3)
	pub := time.Date(2019, time.September, 3, 23, 30, 0, 0, time.UTC)

	got, err := Render(Fact{Kind: KindDayRankYear, Target: target, Rank: 0}, language.English, pub, lex)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "Today: best day of the year"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderRejectsStaleDay(t *testing.T) {
	lex := fixtureLexicon(t)
	target := timerange.MustDay(2019, time.September, 3)
	pub := time.Date(2019, time.September, 6, 7, 0, 0, 0, time.UTC)

	_, err := Render(Fact{Kind: KindDayRankYear, Target: target, Rank: 0}, language.English, pub, lex)
	testkit.MustCode(t, err, perr.ErrorCodeValidation)
}

func TestRenderRejectsUnknownLanguage(t *testing.T) {
	lex := fixtureLexicon(t)
	target := timerange.MustDay(2019, time.September, 3)
	pub := time.Date(2019, time.September, 4, 7, 0, 0, 0, time.UTC)

	_, err := Render(Fact{Kind: KindDayTotal, Target: target, Count: 5}, language.German, pub, lex)
	testkit.MustCode(t, err, perr.ErrorCodeValidation)
}

func TestSentencePicksAmongTopPriority(t *testing.T) {
	lex := fixtureLexicon(t)
	target := timerange.MustDay(2019, time.September, 3)
	pub := time.Date(2019, time.September, 4, 7, 0, 0, 0, time.UTC)

	// single highest-priority fact: the draw has one outcome
	facts := []Fact{
		{Kind: KindDayTotal, Target: target, Count: 5, Priority: 0},
		{Kind: KindMonthToDateTotal, Target: target, Count: 13, Priority: 1},
	}
	for seed := int64(0); seed < 5; seed++ {
		got, err := Sentence(facts, language.English, pub, lex, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Sentence: %v", err)
		}
		if want := "13 cyclists counted this month."; got != want {
			t.Fatalf("seed %d: got %q, want %q", seed, got, want)
		}
	}

	// every outcome of a mixed draw must render one of the candidates
	h := fixtureHistory(t)
	within := span(t,
		time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.September, 5, 0, 0, 0, 0, time.UTC),
	)
	all, err := Extract(h, within, target)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	wants := make(map[string]bool, len(all))
	for _, f := range all {
		s, err := Render(f, language.French, pub, lex)
		if err != nil {
			t.Fatalf("Render %s: %v", f.Kind, err)
		}
		wants[s] = true
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		got, err := Sentence(all, language.French, pub, lex, rng)
		if err != nil {
			t.Fatalf("Sentence: %v", err)
		}
		if !wants[got] {
			t.Fatalf("sentence %q is not a rendering of any extracted fact", got)
		}
	}
}
