package financial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"investai/internal/api"
)

func newCoinGeckoTestServer(t *testing.T, marketsBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(`{"coins":[{"id":"bitcoin"}]}`))
		case "/coins/markets":
			w.Write([]byte(marketsBody))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestCoinGeckoProviderScoring(t *testing.T) {
	ts := newCoinGeckoTestServer(t, `[{"market_cap":5000000,"current_price":2.5,"price_change_percentage_7d_in_currency":10.0}]`)
	defer ts.Close()

	p := &coingeckoProvider{
		client: api.NewClient(api.WithBaseURL(ts.URL)),
		apiKey: func() string { return "" },
	}

	snap, ok := p.fetch(context.Background(), "BTC")
	if !ok {
		t.Fatal("Expected provider to resolve")
	}
	if snap.Source != "coingecko" {
		t.Errorf("Expected source coingecko, got %q", snap.Source)
	}
	if snap.Score != 74 { // 64 + floor(clamp(10, -20, 30))
		t.Errorf("Expected score 74, got %d", snap.Score)
	}
	if snap.RevenueEstimate != 150_000 { // market_cap * 0.03
		t.Errorf("Expected revenue 150000, got %f", snap.RevenueEstimate)
	}
	if snap.BurnRate != 120_000 { // floor of max(120k, mcap*0.005)
		t.Errorf("Expected burn 120000, got %f", snap.BurnRate)
	}
}

func TestCoinGeckoProviderClampsNegativeMomentum(t *testing.T) {
	ts := newCoinGeckoTestServer(t, `[{"market_cap":1000000,"current_price":1.0,"price_change_percentage_7d_in_currency":-25.5}]`)
	defer ts.Close()

	p := &coingeckoProvider{
		client: api.NewClient(api.WithBaseURL(ts.URL)),
		apiKey: func() string { return "" },
	}

	snap, ok := p.fetch(context.Background(), "BTC")
	if !ok {
		t.Fatal("Expected provider to resolve")
	}
	if snap.Score != 44 { // 64 + floor(clamp(-25.5, -20, 30)) = 64 - 20
		t.Errorf("Expected score 44, got %d", snap.Score)
	}
	if snap.PriceChange7d != -25.5 {
		t.Errorf("Expected unclamped change -25.5 in snapshot, got %f", snap.PriceChange7d)
	}
}

func TestCoinGeckoProviderDeclinesNonCrypto(t *testing.T) {
	p := newCoinGeckoProvider(func() string { return "" })
	if _, ok := p.fetch(context.Background(), "Tesla"); ok {
		t.Error("Expected provider to decline a non-crypto entity without any network call")
	}
}

func TestCoinGeckoProviderAbsorbsErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	p := &coingeckoProvider{
		client: api.NewClient(api.WithBaseURL(ts.URL)),
		apiKey: func() string { return "" },
	}
	if _, ok := p.fetch(context.Background(), "BTC"); ok {
		t.Error("Expected provider failure to resolve as no-data")
	}
}

func TestYahooProviderScoring(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v8/finance/chart/TSLA":
			w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":110},
				"indicators":{"quote":[{"close":[100,null,105,110]}]}}]}}`))
		case r.URL.Path == "/v10/finance/quoteSummary/TSLA":
			w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"marketCap":{"raw":1000000000},
				"regularMarketPrice":{"raw":110}},"financialData":{"totalRevenue":{"raw":500000000},
				"currentPrice":{"raw":110}}}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	p := &yahooProvider{client: api.NewClient(api.WithBaseURL(ts.URL))}

	snap, ok := p.fetch(context.Background(), "tsla")
	if !ok {
		t.Fatal("Expected provider to resolve")
	}
	if snap.Source != "yfinance" {
		t.Errorf("Expected source yfinance, got %q", snap.Source)
	}
	if snap.PriceChange7d != 10 { // (110-100)/100 * 100, nulls skipped
		t.Errorf("Expected 10%% change, got %f", snap.PriceChange7d)
	}
	if snap.Score != 68 { // 58 + floor(clamp(10, -15, 22))
		t.Errorf("Expected score 68, got %d", snap.Score)
	}
	if snap.BurnRate != 6_000_000 { // revenue * 0.012
		t.Errorf("Expected burn 6000000, got %f", snap.BurnRate)
	}
}

func TestYahooProviderStripsDollarAndUppercases(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		http.NotFound(w, r)
	}))
	defer ts.Close()

	p := &yahooProvider{client: api.NewClient(api.WithBaseURL(ts.URL))}
	p.fetch(context.Background(), "$tsla")

	if gotPath != "/v8/finance/chart/TSLA" {
		t.Errorf("Expected ticker TSLA, got path %q", gotPath)
	}
}
