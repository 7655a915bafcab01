// Package financial resolves the financial-momentum signal. Providers are
// tried in a fixed order with first-success-wins semantics; when none
// yields data the deterministic synthetic fallback takes over, so a
// snapshot is always produced.
package financial

import (
	"context"
	"math"
	"strings"

	"investai/internal/logger"
	"investai/internal/synth"
	"investai/internal/types"
)

var cryptoVocabulary = []string{"btc", "eth", "sol", "coin", "token", "crypto"}

// provider is one step of the resolver chain. fetch returns false when the
// provider declines the entity or yields no usable data; errors are
// absorbed, never propagated.
type provider interface {
	name() string
	fetch(ctx context.Context, entity string) (types.FinancialSnapshot, bool)
}

// Resolver walks the provider chain for an entity and falls back to the
// synthetic estimator.
type Resolver struct {
	chain []provider
}

// NewResolver builds the default chain: CoinGecko (crypto heuristic), then
// Yahoo Finance. apiKey supplies the optional CoinGecko key from settings.
func NewResolver(apiKey func() string) *Resolver {
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &Resolver{
		chain: []provider{
			newCoinGeckoProvider(apiKey),
			newYahooProvider(),
		},
	}
}

// newResolverWithChain is the test seam for fallback-order checks.
func newResolverWithChain(chain ...provider) *Resolver {
	return &Resolver{chain: chain}
}

// Resolve produces the financial snapshot for entity. Demo mode bypasses
// all providers.
func (r *Resolver) Resolve(ctx context.Context, entity string, demoMode bool) types.FinancialSnapshot {
	if demoMode {
		return demoSnapshot(entity)
	}

	for _, p := range r.chain {
		if snap, ok := p.fetch(ctx, entity); ok {
			logger.Debug(ctx, "Financial provider resolved", "entity", entity, "provider", p.name())
			return snap
		}
	}

	logger.Debug(ctx, "No financial provider data, using fallback", "entity", entity)
	return fallbackSnapshot(entity)
}

// isProbableCrypto reports whether entity looks crypto-like: a leading "$"
// or any of the fixed vocabulary substrings, case-insensitive.
func isProbableCrypto(entity string) bool {
	s := strings.ToLower(strings.TrimSpace(entity))
	if strings.HasPrefix(s, "$") {
		return true
	}
	for _, k := range cryptoVocabulary {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func demoSnapshot(entity string) types.FinancialSnapshot {
	seed := synth.Estimate("demo:"+entity, 55, 88)
	return types.FinancialSnapshot{
		Score:           seed,
		MarketCap:       float64(seed) * 2_200_000,
		PriceChange7d:   float64(seed%24 - 8),
		Price:           float64(seed) * 1.7,
		RevenueEstimate: float64(seed) * 420_000,
		BurnRate:        float64(seed) * 160_000,
		Source:          "demo",
	}
}

func fallbackSnapshot(entity string) types.FinancialSnapshot {
	seed := synth.Estimate("fallback:"+entity, 42, 74)
	return types.FinancialSnapshot{
		Score:           seed,
		MarketCap:       float64(seed) * 1_800_000,
		PriceChange7d:   float64(seed%18 - 6),
		Price:           float64(seed) * 1.2,
		RevenueEstimate: float64(seed) * 250_000,
		BurnRate:        float64(seed) * 140_000,
		Source:          "fallback",
	}
}

func clampFloat(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
