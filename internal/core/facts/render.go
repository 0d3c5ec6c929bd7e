package facts

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/text/language"

	"velofact/internal/core/lexicon"
	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
)

// Sentence picks one fact among the highest-priority candidates and renders
// it in lang. rng is injected so callers control selection determinism
func Sentence(facts []Fact, lang language.Tag, publishedAt time.Time, lex *lexicon.Lexicon, rng *rand.Rand) (string, error) {
	top, err := HighestPriority(facts)
	if err != nil {
		return "", err
	}
	return Render(top[rng.Intn(len(top))], lang, publishedAt, lex)
}

// Render produces the localized sentence for a single fact
func Render(f Fact, lang language.Tag, publishedAt time.Time, lex *lexicon.Lexicon) (string, error) {
	cfg, ok := renderConfigs[f.Kind]
	if !ok {
		return "", perr.Validationf("no renderer for fact kind %s", f.Kind)
	}
	suffix, err := lex.Lookup(cfg.scope, lang)
	if err != nil {
		return "", err
	}

	switch cfg.style {
	case styleTotal:
		return fmt.Sprintf("%d %s.", f.Count, suffix), nil

	case styleWeekdayRank:
		best, err := bestPhrase(f.Rank, cfg.gender, lang, lex)
		if err != nil {
			return "", err
		}
		weekday, err := lex.Lookup(lexicon.WeekdayKey(f.Weekday), lang)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s.", best, weekday, suffix), nil

	case styleDayRank:
		label, err := dayLabel(f.Target, publishedAt, lang, lex)
		if err != nil {
			return "", err
		}
		best, err := bestPhrase(f.Rank, cfg.gender, lang, lex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s %s", label, best, suffix), nil

	default:
		return "", perr.Validationf("unhandled render style %d", cfg.style)
	}
}

// bestPhrase renders "best" for rank 0 and "<ordinal> best" otherwise,
// agreeing the qualifier with the gendered scope noun
func bestPhrase(rank int, g gender, lang language.Tag, lex *lexicon.Lexicon) (string, error) {
	bestKey := lexicon.KeyMaleBest
	if g == genderFemale {
		bestKey = lexicon.KeyFemaleBest
	}
	best, err := lex.Lookup(bestKey, lang)
	if err != nil {
		return "", err
	}
	if rank == 0 {
		return best, nil
	}
	ord, err := ordinal(rank, lang, lex)
	if err != nil {
		return "", err
	}
	return ord + " " + best, nil
}

// ordinal renders a zero-based rank as a localized ordinal word or numeral
func ordinal(rank int, lang language.Tag, lex *lexicon.Lexicon) (string, error) {
	switch rank {
	case 0:
		return lex.Lookup(lexicon.KeyFirst, lang)
	case 1:
		return lex.Lookup(lexicon.KeySecond, lang)
	case 2:
		return lex.Lookup(lexicon.KeyThird, lang)
	default:
		ith, err := lex.Lookup(lexicon.KeyIth, lang)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d%s", rank, ith), nil
	}
}

// dayLabel names the target day relative to the publication instant.
// Only same-day and previous-day publication are supported; anything else
// means the digest is being composed for a stale day and must fail loudly
func dayLabel(target timerange.Day, publishedAt time.Time, lang language.Tag, lex *lexicon.Lexicon) (string, error) {
	switch {
	case timerange.SameCalendarDay(publishedAt, target.Start()):
		return lex.Lookup(lexicon.KeyToday, lang)
	case timerange.SameCalendarDay(publishedAt.AddDate(0, 0, -1), target.Start()):
		return lex.Lookup(lexicon.KeyYesterday, lang)
	default:
		return "", perr.Validationf("day %s is neither today nor yesterday at publication time %s",
			target.Start().Format("2006-01-02"), publishedAt.Format(time.RFC3339))
	}
}
