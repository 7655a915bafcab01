// Package social resolves the social-sentiment signal from Reddit. The
// chain is authenticated API, then the public search endpoint, then the
// deterministic synthetic fallback.
package social

import (
	"context"
	"math"

	"investai/internal/logger"
	"investai/internal/synth"
	"investai/internal/types"
)

const (
	noThreadPlaceholder = "No significant thread"
	fallbackTopPost     = "No live Reddit data available; fallback model used."
	demoTopPost         = "Demo mode: market chatter is simulated."
)

// observation is a provider's raw sentiment read before bucketing.
type observation struct {
	ratio      float64
	intensity  int
	topPost    string
	sampleSize int
	source     string
}

// provider is one step of the social chain.
type provider interface {
	name() string
	fetch(ctx context.Context, entity string) (observation, bool)
}

// Resolver walks the social provider chain for an entity.
type Resolver struct {
	chain []provider
}

// NewResolver builds the default chain. creds supplies the authenticated
// API credentials from settings; absent credentials disable that step.
func NewResolver(creds func() RedditCredentials) *Resolver {
	if creds == nil {
		creds = func() RedditCredentials { return RedditCredentials{} }
	}
	userAgent := func() string { return creds().UserAgent }
	return &Resolver{
		chain: []provider{
			newRedditOAuthProvider(creds),
			newRedditPublicProvider(userAgent),
		},
	}
}

func newResolverWithChain(chain ...provider) *Resolver {
	return &Resolver{chain: chain}
}

// Resolve produces the social snapshot for entity. Demo mode bypasses the
// chain entirely.
func (r *Resolver) Resolve(ctx context.Context, entity string, demoMode bool) types.SocialSnapshot {
	if demoMode {
		seed := synth.Seed(entity)
		ratio := 0.4 + float64(seed%48)/100
		return snapshotFrom(observation{
			ratio:      ratio,
			intensity:  55 + seed%35,
			topPost:    demoTopPost,
			sampleSize: 25,
			source:     "demo",
		})
	}

	for _, p := range r.chain {
		if obs, ok := p.fetch(ctx, entity); ok {
			logger.Debug(ctx, "Social provider resolved", "entity", entity, "provider", p.name())
			return snapshotFrom(obs)
		}
	}

	logger.Debug(ctx, "No social provider data, using fallback", "entity", entity)
	seed := synth.Seed("fallback:" + entity)
	return snapshotFrom(observation{
		ratio:      0.35 + float64(seed%42)/100,
		intensity:  48 + seed%29,
		topPost:    fallbackTopPost,
		sampleSize: 0,
		source:     "fallback",
	})
}

// observe derives an observation from per-post scores: the bullish ratio is
// the share of posts scoring above 20, intensity blends the mean score with
// the ratio.
func observe(values []int, titles []string, source string) observation {
	positive := 0
	sum := 0
	for _, v := range values {
		sum += v
		if v > 20 {
			positive++
		}
	}
	count := len(values)
	if count < 1 {
		count = 1
	}
	ratio := float64(positive) / float64(count)

	mean := float64(sum) / float64(count)
	intensity := int(mean/8 + ratio*40)
	if intensity > 100 {
		intensity = 100
	}

	topPost := noThreadPlaceholder
	if len(titles) > 0 {
		topPost = titles[0]
	}

	return observation{
		ratio:      ratio,
		intensity:  intensity,
		topPost:    topPost,
		sampleSize: len(values),
		source:     source,
	}
}

func snapshotFrom(obs observation) types.SocialSnapshot {
	score := int(math.Round(obs.ratio * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return types.SocialSnapshot{
		Score:        score,
		Sentiment:    labelFromRatio(obs.ratio),
		Intensity:    obs.intensity,
		BullishRatio: math.Round(obs.ratio*1000) / 1000,
		TopPost:      obs.topPost,
		SampleSize:   obs.sampleSize,
		Source:       obs.source,
	}
}

// labelFromRatio buckets the bullish ratio into the five sentiment labels.
func labelFromRatio(ratio float64) string {
	switch {
	case ratio >= 0.70:
		return "VERY BULLISH"
	case ratio >= 0.56:
		return "BULLISH"
	case ratio >= 0.45:
		return "NEUTRAL"
	case ratio >= 0.33:
		return "BEARISH"
	default:
		return "VERY BEARISH"
	}
}
