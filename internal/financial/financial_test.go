package financial

import (
	"context"
	"testing"

	"investai/internal/synth"
	"investai/internal/types"
)

type stubProvider struct {
	providerName string
	snapshot     types.FinancialSnapshot
	ok           bool
	calls        int
}

func (s *stubProvider) name() string { return s.providerName }

func (s *stubProvider) fetch(ctx context.Context, entity string) (types.FinancialSnapshot, bool) {
	s.calls++
	return s.snapshot, s.ok
}

func TestIsProbableCrypto(t *testing.T) {
	cases := []struct {
		entity string
		want   bool
	}{
		{"$PEPE", true},
		{"  $pepe  ", true},
		{"Bitcoin BTC", true},
		{"ethereal", true}, // contains "eth"
		{"SuperToken Labs", true},
		{"CryptoVentures", true},
		{"SolanaCoin", true},
		{"Tesla", false},
		{"Acme Corp", false},
		{"", false},
	}

	for _, c := range cases {
		if got := isProbableCrypto(c.entity); got != c.want {
			t.Errorf("isProbableCrypto(%q) = %v, want %v", c.entity, got, c.want)
		}
	}
}

func TestResolveFirstSuccessWins(t *testing.T) {
	first := &stubProvider{providerName: "coingecko", snapshot: types.FinancialSnapshot{Score: 70, Source: "coingecko"}, ok: true}
	second := &stubProvider{providerName: "yfinance", snapshot: types.FinancialSnapshot{Score: 50, Source: "yfinance"}, ok: true}
	r := newResolverWithChain(first, second)

	snap := r.Resolve(context.Background(), "BTC", false)
	if snap.Source != "coingecko" {
		t.Errorf("Expected first provider to win, got source %q", snap.Source)
	}
	if second.calls != 0 {
		t.Errorf("Second provider should not be called, got %d calls", second.calls)
	}
}

func TestResolveFallsThroughChain(t *testing.T) {
	first := &stubProvider{providerName: "coingecko"}
	second := &stubProvider{providerName: "yfinance", snapshot: types.FinancialSnapshot{Score: 61, Source: "yfinance"}, ok: true}
	r := newResolverWithChain(first, second)

	snap := r.Resolve(context.Background(), "Tesla", false)
	if snap.Source != "yfinance" {
		t.Errorf("Expected second provider, got source %q", snap.Source)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("Expected both providers tried once, got %d and %d", first.calls, second.calls)
	}
}

func TestResolveFallbackSnapshot(t *testing.T) {
	r := newResolverWithChain(&stubProvider{providerName: "coingecko"}, &stubProvider{providerName: "yfinance"})

	entity := "Obscure Startup"
	snap := r.Resolve(context.Background(), entity, false)

	seed := synth.Estimate("fallback:"+entity, 42, 74)
	if snap.Source != "fallback" {
		t.Fatalf("Expected fallback source, got %q", snap.Source)
	}
	if snap.Score != seed {
		t.Errorf("Expected score %d, got %d", seed, snap.Score)
	}
	if snap.MarketCap != float64(seed)*1_800_000 {
		t.Errorf("Expected market cap %f, got %f", float64(seed)*1_800_000, snap.MarketCap)
	}
	if snap.PriceChange7d != float64(seed%18-6) {
		t.Errorf("Expected change %f, got %f", float64(seed%18-6), snap.PriceChange7d)
	}
	if snap.Price != float64(seed)*1.2 {
		t.Errorf("Expected price %f, got %f", float64(seed)*1.2, snap.Price)
	}
	if snap.RevenueEstimate != float64(seed)*250_000 {
		t.Errorf("Expected revenue %f, got %f", float64(seed)*250_000, snap.RevenueEstimate)
	}
	if snap.BurnRate != float64(seed)*140_000 {
		t.Errorf("Expected burn %f, got %f", float64(seed)*140_000, snap.BurnRate)
	}
}

func TestResolveDemoBypassesProviders(t *testing.T) {
	live := &stubProvider{providerName: "coingecko", snapshot: types.FinancialSnapshot{Score: 99, Source: "coingecko"}, ok: true}
	r := newResolverWithChain(live)

	entity := "BTC"
	snap := r.Resolve(context.Background(), entity, true)

	if live.calls != 0 {
		t.Error("Demo mode must not touch live providers")
	}
	seed := synth.Estimate("demo:"+entity, 55, 88)
	if snap.Source != "demo" {
		t.Fatalf("Expected demo source, got %q", snap.Source)
	}
	if snap.Score != seed {
		t.Errorf("Expected score %d, got %d", seed, snap.Score)
	}
	if snap.MarketCap != float64(seed)*2_200_000 {
		t.Errorf("Expected market cap %f, got %f", float64(seed)*2_200_000, snap.MarketCap)
	}
	if snap.PriceChange7d != float64(seed%24-8) {
		t.Errorf("Expected change %f, got %f", float64(seed%24-8), snap.PriceChange7d)
	}
}

func TestDemoSnapshotDeterministic(t *testing.T) {
	a := demoSnapshot("Acme")
	b := demoSnapshot("Acme")
	if a != b {
		t.Errorf("Demo snapshot not deterministic: %+v vs %+v", a, b)
	}
	if a.Score < 55 || a.Score > 88 {
		t.Errorf("Demo score %d out of [55,88]", a.Score)
	}
}
