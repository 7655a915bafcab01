// Package research is the aggregation engine: it fans out the three
// category resolvers, fuses their scores into a verdict and hands the
// outcome to the result store.
package research

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"investai/internal/interfaces"
	"investai/internal/logger"
	"investai/internal/types"
)

// ErrMissingEntity is returned when the entity is empty or blank. It is the
// only error Analyze can return: past validation, every resolver is
// guaranteed to produce a snapshot.
var ErrMissingEntity = errors.New("entity is required")

// Fixed fusion weights; they sum to 1.0.
const (
	weightFinancials = 0.4
	weightFounders   = 0.3
	weightSocial     = 0.3
)

// Verdict thresholds on the fused score.
const (
	investThreshold  = 76
	observeThreshold = 56
)

// ResultSink persists finished results.
type ResultSink interface {
	Insert(result types.ResearchResult) error
}

// Engine coordinates one analysis request end to end.
type Engine struct {
	financial   interfaces.FinancialResolver
	founder     interfaces.FounderResolver
	social      interfaces.SocialResolver
	results     ResultSink
	demoDefault func() bool
}

// New creates the engine. demoDefault supplies the settings-level demo
// toggle; nil means no default.
func New(financial interfaces.FinancialResolver, founder interfaces.FounderResolver, social interfaces.SocialResolver, results ResultSink, demoDefault func() bool) *Engine {
	if demoDefault == nil {
		demoDefault = func() bool { return false }
	}
	return &Engine{
		financial:   financial,
		founder:     founder,
		social:      social,
		results:     results,
		demoDefault: demoDefault,
	}
}

// Analyze researches entity and returns the fused result. The three
// resolvers run concurrently; they share no mutable state and any
// completion order is valid.
func (e *Engine) Analyze(ctx context.Context, entity string, demoMode bool) (*types.ResearchResult, error) {
	if strings.TrimSpace(entity) == "" {
		return nil, ErrMissingEntity
	}
	demo := demoMode || e.demoDefault()

	op := logger.StartOperation(ctx, "research.analyze")
	defer op.End()
	ctx = op.GetContext()

	var (
		financials types.FinancialSnapshot
		founders   types.FounderProfile
		social     types.SocialSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		financials = e.financial.Resolve(gctx, entity, demo)
		return nil
	})
	g.Go(func() error {
		founders = e.founder.Resolve(gctx, entity, demo)
		return nil
	})
	g.Go(func() error {
		social = e.social.Resolve(gctx, entity, demo)
		return nil
	})
	_ = g.Wait() // resolvers never fail

	final := fuse(financials.Score, founders.Score, social.Score)
	verdict := verdictFor(final)
	reason := fmt.Sprintf("Financial momentum %d/100, founder reliability %d%%, social sentiment %s.",
		financials.Score, founders.Reliability, social.Sentiment)

	mode := "real"
	if demo {
		mode = "demo"
	}

	result := &types.ResearchResult{
		Entity:     entity,
		Score:      final,
		Verdict:    verdict,
		Reason:     reason,
		Financials: financials,
		Founders:   founders,
		Social:     social,
		Weights: types.Weights{
			Financials: weightFinancials,
			Founders:   weightFounders,
			Social:     weightSocial,
		},
		Mode:      mode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := e.results.Insert(*result); err != nil {
		logger.Warn(ctx, "Failed to persist research result", "entity", entity, "error", err)
	}

	logger.Verdict(ctx, entity, verdict, final, reason, "mode", mode)
	return result, nil
}

// fuse combines the category scores with the fixed weights and clamps the
// rounded result into [0,100].
func fuse(financial, founder, social int) int {
	final := int(math.Round(float64(financial)*weightFinancials +
		float64(founder)*weightFounders +
		float64(social)*weightSocial))
	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}
	return final
}

func verdictFor(score int) string {
	switch {
	case score >= investThreshold:
		return "INVESTIR"
	case score >= observeThreshold:
		return "OBSERVER"
	default:
		return "FUIR"
	}
}
