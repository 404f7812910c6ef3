// Package insights adds narrative, AI-written guidance to ranked career
// matches. Every returned match carries complete insights: when the AI call
// fails or its answer is unusable a deterministic fallback is used instead.
package insights

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-guide/internal/ai"
	"github.com/spigell/career-guide/internal/assessment"
	"github.com/spigell/career-guide/internal/career"
	"github.com/spigell/career-guide/internal/logger"
	"github.com/spigell/career-guide/internal/utils"
)

const (
	// MaxMatches is how many leading matches are enriched; the rest are dropped.
	MaxMatches = 5

	defaultConcurrency  = MaxMatches
	defaultMaxLogLength = 200
)

var errNoCaller = errors.New("ai caller is not configured")

// Outcome is the result of enriching one match. Insights are always complete;
// Fallback tells whether they came from the fallback builder, and Err why.
type Outcome struct {
	Insights career.Insights
	Fallback bool
	Err      error
}

type Enricher struct {
	caller      ai.Caller
	logger      *zap.Logger
	concurrency int
	maxLogLen   int
}

type Option func(*Enricher)

// WithConcurrency bounds how many AI calls run at once. One makes the
// enrichment sequential.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithMaxLogLength sets how much of prompts and responses debug logs keep.
func WithMaxLogLength(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.maxLogLen = n
		}
	}
}

// New creates an Enricher. A nil caller is allowed: every match then gets
// fallback insights.
func New(caller ai.Caller, log *zap.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		caller:      caller,
		logger:      logger.OrNop(log),
		concurrency: defaultConcurrency,
		maxLogLen:   defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetEnhancedMatches enriches the first MaxMatches matches, keeping their order.
// It never fails; degraded results use fallback insights.
func (e *Enricher) GetEnhancedMatches(ctx context.Context, profile *assessment.Profile, answers []assessment.Answer, matches []career.Match) []career.EnhancedMatch {
	top := matches
	if len(top) > MaxMatches {
		top = top[:MaxMatches]
	}

	outcomes, err := e.Enrich(ctx, profile, answers, top)
	if err != nil {
		e.logger.Warn("insight enrichment failed; using fallback insights for every match",
			zap.Int("matches", len(top)),
			zap.Error(err),
		)
		outcomes = fallbackOutcomes(top, err)
	}

	enhanced := make([]career.EnhancedMatch, len(top))
	for i, m := range top {
		enhanced[i] = career.EnhancedMatch{Match: m, AIInsights: outcomes[i].Insights}
	}
	return enhanced
}

// Enrich returns one outcome per match, in input order. Matches are enriched
// independently. The error is only set when the batch could not be prepared,
// in which case no AI call was made.
func (e *Enricher) Enrich(ctx context.Context, profile *assessment.Profile, answers []assessment.Answer, matches []career.Match) ([]Outcome, error) {
	b, err := newBatch(profile, answers)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(matches))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, m := range matches {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					err := fmt.Errorf("ai caller panicked: %v", r)
					logger.WithFields(e.logger, logger.CareerFields(m.Career.Title, m.Career.Sector)...).
						Error("AI insight generation panicked; using fallback insights", zap.Error(err))
					outcomes[i] = fallbackOutcome(m, err)
				}
			}()
			outcomes[i] = e.enrichOne(ctx, b, m)
			return nil
		})
	}
	_ = g.Wait()

	fallbacks := 0
	for _, o := range outcomes {
		if o.Fallback {
			fallbacks++
		}
	}
	e.logger.Info("insight enrichment completed",
		zap.Int("matches", len(matches)),
		zap.Int("fallbacks", fallbacks),
	)

	return outcomes, nil
}

func (e *Enricher) enrichOne(ctx context.Context, b *batch, m career.Match) Outcome {
	log := logger.WithFields(e.logger, logger.CareerFields(m.Career.Title, m.Career.Sector)...)

	if e.caller == nil {
		log.Debug("no ai caller configured; using fallback insights")
		return fallbackOutcome(m, errNoCaller)
	}

	prompt := b.prompt(m)
	log.Debug("insight request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.caller.GenerateContent(ctx, prompt)
	if err != nil {
		log.Warn("AI insight generation failed; using fallback insights", zap.Error(err))
		return fallbackOutcome(m, err)
	}

	log.Debug("insight response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	parsed, err := parseInsights(raw)
	if err != nil {
		log.Warn("AI insight response is not usable; using fallback insights",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
		)
		return fallbackOutcome(m, err)
	}

	return Outcome{Insights: backfill(parsed, b.profile, m)}
}

func fallbackOutcome(m career.Match, err error) Outcome {
	return Outcome{Insights: fallbackInsights(m), Fallback: true, Err: err}
}

func fallbackOutcomes(matches []career.Match, err error) []Outcome {
	outcomes := make([]Outcome, len(matches))
	for i, m := range matches {
		outcomes[i] = fallbackOutcome(m, err)
	}
	return outcomes
}
