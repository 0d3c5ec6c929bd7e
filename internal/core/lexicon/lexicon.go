// Package lexicon loads the bilingual sentence dictionary from the embedded
// sentences.json and serves lookups per locale. The key set is closed: the
// file must define exactly the keys below, each in every supported language
package lexicon

import (
	_ "embed"
	"encoding/json"
	"time"

	perr "velofact/internal/platform/errors"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

//go:embed sentences.json
var embedded []byte

// Key identifies one semantic sentence fragment
type Key string

// Sentence fragment keys
const (
	KeyHistoricalTotal Key = "HISTORICAL_TOTAL"
	KeyYearTotal       Key = "YEAR_TOTAL"
	KeyMonthTotal      Key = "MONTH_TOTAL"

	KeyFirst  Key = "FIRST"
	KeySecond Key = "SECOND"
	KeyThird  Key = "THIRD"
	KeyIth    Key = "ITH"

	KeyFemaleBest Key = "FEMALE_BEST"
	KeyMaleBest   Key = "MALE_BEST"

	KeyMonday    Key = "MONDAY"
	KeyTuesday   Key = "TUESDAY"
	KeyWednesday Key = "WEDNESDAY"
	KeyThursday  Key = "THURSDAY"
	KeyFriday    Key = "FRIDAY"
	KeySaturday  Key = "SATURDAY"
	KeySunday    Key = "SUNDAY"

	KeySinceBeginning        Key = "SINCE_BEGINNING"
	KeySinceBeginningOfYear  Key = "SINCE_BEGINNING_OF_YEAR"
	KeySinceBeginningOfMonth Key = "SINCE_BEGINNING_OF_MONTH"

	KeyDayOfMonth     Key = "DAY_OF_MONTH"
	KeyDayOfYear      Key = "DAY_OF_YEAR"
	KeyDayOfHistory   Key = "DAY_OF_HISTORY"
	KeyMonthOfYear    Key = "MONTH_OF_YEAR"
	KeyMonthOfHistory Key = "MONTH_OF_HISTORY"
	KeyYearOfHistory  Key = "YEAR_OF_HISTORY"

	KeyToday     Key = "TODAY"
	KeyYesterday Key = "YESTERDAY"
)

// allKeys is the closed key set; sentences.json must cover it exactly
var allKeys = []Key{
	KeyHistoricalTotal, KeyYearTotal, KeyMonthTotal,
	KeyFirst, KeySecond, KeyThird, KeyIth,
	KeyFemaleBest, KeyMaleBest,
	KeyMonday, KeyTuesday, KeyWednesday, KeyThursday, KeyFriday, KeySaturday, KeySunday,
	KeySinceBeginning, KeySinceBeginningOfYear, KeySinceBeginningOfMonth,
	KeyDayOfMonth, KeyDayOfYear, KeyDayOfHistory,
	KeyMonthOfYear, KeyMonthOfHistory, KeyYearOfHistory,
	KeyToday, KeyYesterday,
}

// WeekdayKey maps a weekday to its sentence key
func WeekdayKey(w time.Weekday) Key {
	switch w {
	case time.Monday:
		return KeyMonday
	case time.Tuesday:
		return KeyTuesday
	case time.Wednesday:
		return KeyWednesday
	case time.Thursday:
		return KeyThursday
	case time.Friday:
		return KeyFriday
	case time.Saturday:
		return KeySaturday
	default:
		return KeySunday
	}
}

// Languages returns the supported locales, French first (the publication default)
func Languages() []language.Tag { return []language.Tag{language.French, language.English} }

// entry is the raw per-key shape inside sentences.json
type entry struct {
	FR string `json:"fr" validate:"required"`
	EN string `json:"en" validate:"required"`
}

// Lexicon serves localized sentence fragments, read-only after load
type Lexicon struct {
	uni *ut.UniversalTranslator
}

// Load parses and validates the embedded sentences.json
func Load() (*Lexicon, error) { return FromJSON(embedded) }

// FromJSON builds a Lexicon from a raw dictionary document.
// Unknown keys, missing keys and missing languages are all validation errors
func FromJSON(data []byte) (*Lexicon, error) {
	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "lexicon: parse sentences")
	}

	known := make(map[Key]struct{}, len(allKeys))
	for _, k := range allKeys {
		known[k] = struct{}{}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	for key, e := range raw {
		if _, ok := known[Key(key)]; !ok {
			return nil, perr.Validationf("lexicon: unknown key %q", key)
		}
		if err := v.Struct(e); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "lexicon: key %q incomplete", key)
		}
	}
	for _, k := range allKeys {
		if _, ok := raw[string(k)]; !ok {
			return nil, perr.Validationf("lexicon: missing key %q", k)
		}
	}

	frLoc, enLoc := fr.New(), en.New()
	uni := ut.New(frLoc, frLoc, enLoc)
	frT, _ := uni.GetTranslator("fr")
	enT, _ := uni.GetTranslator("en")
	for key, e := range raw {
		if err := frT.Add(key, e.FR, false); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "lexicon: register fr %q", key)
		}
		if err := enT.Add(key, e.EN, false); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "lexicon: register en %q", key)
		}
	}

	return &Lexicon{uni: uni}, nil
}

// Lookup returns the fragment for key in the given language
func (l *Lexicon) Lookup(key Key, lang language.Tag) (string, error) {
	tr, ok := l.uni.GetTranslator(lang.String())
	if !ok {
		return "", perr.Validationf("lexicon: unsupported language %q", lang)
	}
	s, err := tr.T(string(key))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeValidation, "lexicon: lookup %q", key)
	}
	return s, nil
}
