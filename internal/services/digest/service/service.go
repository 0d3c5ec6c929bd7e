// Package service contains digest workflows
package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"velofact/internal/core/facts"
	"velofact/internal/core/history"
	"velofact/internal/core/lexicon"
	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
	"velofact/internal/platform/logger"
	"velofact/internal/services/digest/domain"
)

// Service defines the digest service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the digest service
type Svc struct {
	fetcher    domain.FetcherPort
	publishers []domain.PublisherPort
	lex        *lexicon.Lexicon
	rng        *rand.Rand
	newID      func() string
	log        logger.Logger
}

// Option tweaks an Svc at construction time
type Option func(*Svc)

// WithRand injects the selection source, used to pin draws in tests
func WithRand(rng *rand.Rand) Option { return func(s *Svc) { s.rng = rng } }

// WithIDFunc injects the run id generator
func WithIDFunc(fn func() string) Option { return func(s *Svc) { s.newID = fn } }

// New constructs a digest service
func New(fetcher domain.FetcherPort, lex *lexicon.Lexicon, publishers []domain.PublisherPort, opts ...Option) *Svc {
	if fetcher == nil {
		panic("digest.Service requires a non nil Fetcher")
	}
	if lex == nil {
		panic("digest.Service requires a non nil Lexicon")
	}
	s := &Svc{
		fetcher:    fetcher,
		publishers: publishers,
		lex:        lex,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:      uuid.NewString,
		log:        *logger.Named("digest"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Compose fetches the history and renders one sentence about yesterday
func (s *Svc) Compose(ctx context.Context, in domain.ComposeInput) (domain.Report, error) {
	runID := s.newID()
	ctx = logger.WithRun(ctx, runID, "compose")
	log := logger.C(ctx)

	h, err := s.fetcher.FetchDaily(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	now := in.Now.UTC()
	target, err := timerange.NewDay(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
	if err != nil {
		return domain.Report{}, err
	}

	span, err := s.window(h, now)
	if err != nil {
		return domain.Report{}, err
	}

	extracted, err := facts.Extract(h, span, target)
	if err != nil {
		return domain.Report{}, err
	}
	sentence, err := facts.Sentence(extracted, in.Lang, now, s.lex, s.rng)
	if err != nil {
		return domain.Report{}, err
	}

	log.Info().
		Str("day", target.Start().Format("2006-01-02")).
		Str("lang", in.Lang.String()).
		Int("facts", len(extracted)).
		Msg("digest composed")

	return domain.Report{
		RunID:      runID,
		Day:        target.Start().Format("2006-01-02"),
		Lang:       in.Lang.String(),
		Sentence:   sentence,
		FactCount:  len(extracted),
		ComposedAt: now,
	}, nil
}

// window spans from the first observed day up to the composition instant
func (s *Svc) window(h *history.Daily, now time.Time) (timerange.Span, error) {
	observed, err := h.Span()
	if err != nil {
		return timerange.Span{}, err
	}
	if !now.After(observed.Start()) {
		return timerange.Span{}, perr.Validationf("composition instant %s predates the count history", now.Format(time.RFC3339))
	}
	return timerange.NewSpan(observed.Start(), now)
}

// Summarize fetches the history and reports its shape
func (s *Svc) Summarize(ctx context.Context) (domain.Summary, error) {
	h, err := s.fetcher.FetchDaily(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	days := h.Days()
	if len(days) == 0 {
		return domain.Summary{}, perr.Validationf("count history is empty")
	}
	last := days[len(days)-1]
	yearTotal, _ := h.YearCount(last.Year())
	monthTotal, _ := h.MonthCount(last.Month())

	best := make(map[string]int)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if v, ok := h.BestByWeekday(wd); ok {
			best[wd.String()] = v
		}
	}

	return domain.Summary{
		Days:          h.Len(),
		Total:         h.Total(),
		YearTotal:     yearTotal,
		MonthTotal:    monthTotal,
		FirstDay:      days[0].Start().Format("2006-01-02"),
		LastDay:       last.Start().Format("2006-01-02"),
		BestByWeekday: best,
	}, nil
}

// Broadcast composes and delivers the sentence to every publisher in order,
// stopping at the first failure
func (s *Svc) Broadcast(ctx context.Context, in domain.ComposeInput) (domain.Report, error) {
	report, err := s.Compose(ctx, in)
	if err != nil {
		return domain.Report{}, err
	}
	ctx = logger.WithRun(ctx, report.RunID, "broadcast")
	log := logger.C(ctx)

	for i, pub := range s.publishers {
		if !pub.CanBePublished(report.Sentence) {
			return report, perr.Publishf("publisher %d refuses sentence of %d bytes", i, len(report.Sentence))
		}
		if err := pub.Publish(ctx, report.Sentence); err != nil {
			return report, perr.Wrapf(err, perr.ErrorCodePublish, "publisher %d failed", i)
		}
		log.Info().Int("publisher", i).Msg("sentence delivered")
	}
	return report, nil
}
