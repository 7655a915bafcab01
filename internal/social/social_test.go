package social

import (
	"context"
	"testing"

	"investai/internal/synth"
)

type stubProvider struct {
	providerName string
	obs          observation
	ok           bool
	calls        int
}

func (s *stubProvider) name() string { return s.providerName }

func (s *stubProvider) fetch(ctx context.Context, entity string) (observation, bool) {
	s.calls++
	return s.obs, s.ok
}

func TestLabelFromRatio(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0.75, "VERY BULLISH"},
		{0.70, "VERY BULLISH"},
		{0.60, "BULLISH"},
		{0.56, "BULLISH"},
		{0.50, "NEUTRAL"},
		{0.45, "NEUTRAL"},
		{0.40, "BEARISH"},
		{0.33, "BEARISH"},
		{0.20, "VERY BEARISH"},
		{0.0, "VERY BEARISH"},
	}

	for _, c := range cases {
		if got := labelFromRatio(c.ratio); got != c.want {
			t.Errorf("labelFromRatio(%.2f) = %q, want %q", c.ratio, got, c.want)
		}
	}
}

func TestObserve(t *testing.T) {
	// two of three posts above the positive threshold of 20
	obs := observe([]int{30, 10, 40}, []string{"first", "second", "third"}, "reddit-public")

	if obs.sampleSize != 3 {
		t.Errorf("Expected sample size 3, got %d", obs.sampleSize)
	}
	if obs.topPost != "first" {
		t.Errorf("Expected top post 'first', got %q", obs.topPost)
	}
	// mean/8 + ratio*40 = (80/3)/8 + (2/3)*40, truncated after float rounding
	if obs.intensity != 29 {
		t.Errorf("Expected intensity 29, got %d", obs.intensity)
	}

	snap := snapshotFrom(obs)
	if snap.Score != 67 { // round(2/3 * 100)
		t.Errorf("Expected score 67, got %d", snap.Score)
	}
	if snap.Sentiment != "BULLISH" {
		t.Errorf("Expected BULLISH, got %q", snap.Sentiment)
	}
	if snap.BullishRatio != 0.667 {
		t.Errorf("Expected bullish ratio 0.667, got %f", snap.BullishRatio)
	}
}

func TestObserveCapsIntensity(t *testing.T) {
	obs := observe([]int{5000, 4000, 3000}, []string{"a", "b", "c"}, "praw")
	if obs.intensity != 100 {
		t.Errorf("Expected intensity capped at 100, got %d", obs.intensity)
	}
}

func TestObserveNoTitles(t *testing.T) {
	obs := observe([]int{1, 2}, nil, "praw")
	if obs.topPost != noThreadPlaceholder {
		t.Errorf("Expected placeholder top post, got %q", obs.topPost)
	}
}

func TestResolveChainOrder(t *testing.T) {
	authed := &stubProvider{providerName: "praw"}
	public := &stubProvider{providerName: "reddit-public", obs: observation{ratio: 0.5, intensity: 20, topPost: "t", sampleSize: 4, source: "reddit-public"}, ok: true}
	r := newResolverWithChain(authed, public)

	snap := r.Resolve(context.Background(), "Acme", false)
	if snap.Source != "reddit-public" {
		t.Errorf("Expected reddit-public source, got %q", snap.Source)
	}
	if authed.calls != 1 {
		t.Errorf("Expected authenticated provider tried first, got %d calls", authed.calls)
	}
}

func TestResolveFallback(t *testing.T) {
	r := newResolverWithChain(&stubProvider{providerName: "praw"}, &stubProvider{providerName: "reddit-public"})

	entity := "Obscure Startup"
	snap := r.Resolve(context.Background(), entity, false)

	seed := synth.Seed("fallback:" + entity)
	wantRatio := 0.35 + float64(seed%42)/100
	if snap.Source != "fallback" {
		t.Fatalf("Expected fallback source, got %q", snap.Source)
	}
	if snap.Sentiment != labelFromRatio(wantRatio) {
		t.Errorf("Expected sentiment %q, got %q", labelFromRatio(wantRatio), snap.Sentiment)
	}
	if snap.Intensity != 48+seed%29 {
		t.Errorf("Expected intensity %d, got %d", 48+seed%29, snap.Intensity)
	}
	if snap.SampleSize != 0 {
		t.Errorf("Expected zero sample size, got %d", snap.SampleSize)
	}
	if snap.TopPost != fallbackTopPost {
		t.Errorf("Unexpected top post %q", snap.TopPost)
	}
}

func TestResolveDemoBypassesChain(t *testing.T) {
	live := &stubProvider{providerName: "praw", obs: observation{ratio: 0.9, source: "praw"}, ok: true}
	r := newResolverWithChain(live)

	entity := "BTC"
	snap := r.Resolve(context.Background(), entity, true)

	if live.calls != 0 {
		t.Error("Demo mode must not touch live providers")
	}
	seed := synth.Seed(entity)
	if snap.Source != "demo" {
		t.Fatalf("Expected demo source, got %q", snap.Source)
	}
	if snap.Intensity != 55+seed%35 {
		t.Errorf("Expected intensity %d, got %d", 55+seed%35, snap.Intensity)
	}
	if snap.SampleSize != 25 {
		t.Errorf("Expected fixed sample size 25, got %d", snap.SampleSize)
	}
	if snap.TopPost != demoTopPost {
		t.Errorf("Unexpected top post %q", snap.TopPost)
	}
}
