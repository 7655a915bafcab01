package financial

import (
	"context"
	"net/url"
	"strings"

	"investai/internal/api"
	"investai/internal/logger"
	"investai/internal/types"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// coingeckoProvider resolves crypto-looking entities through the CoinGecko
// free-text search and markets endpoints. It declines entities that do not
// pass the crypto heuristic, so the chain falls through to the equity path.
type coingeckoProvider struct {
	client *api.Client
	apiKey func() string
}

func newCoinGeckoProvider(apiKey func() string) *coingeckoProvider {
	return &coingeckoProvider{
		client: api.NewClient(api.WithBaseURL(coingeckoBaseURL)),
		apiKey: apiKey,
	}
}

func (p *coingeckoProvider) name() string { return "coingecko" }

type coingeckoSearchResponse struct {
	Coins []struct {
		ID string `json:"id"`
	} `json:"coins"`
}

type coingeckoMarketRow struct {
	MarketCap     *float64 `json:"market_cap"`
	CurrentPrice  *float64 `json:"current_price"`
	PriceChange7d *float64 `json:"price_change_percentage_7d_in_currency"`
}

func (p *coingeckoProvider) fetch(ctx context.Context, entity string) (types.FinancialSnapshot, bool) {
	if !isProbableCrypto(entity) {
		return types.FinancialSnapshot{}, false
	}

	query := strings.TrimSpace(strings.ReplaceAll(entity, "$", ""))
	if query == "" {
		return types.FinancialSnapshot{}, false
	}

	headers := map[string]string{"Accept": "application/json"}
	if key := p.apiKey(); key != "" {
		headers["x-cg-demo-api-key"] = key
	}

	resp, err := p.client.GET(ctx, "/search", url.Values{"query": {query}}, headers)
	if err != nil {
		logger.Debug(ctx, "CoinGecko search failed", "entity", entity, "error", err)
		return types.FinancialSnapshot{}, false
	}
	var search coingeckoSearchResponse
	if err := resp.ParseJSON(&search); err != nil || len(search.Coins) == 0 {
		return types.FinancialSnapshot{}, false
	}

	resp, err = p.client.GET(ctx, "/coins/markets", url.Values{
		"vs_currency":             {"usd"},
		"ids":                     {search.Coins[0].ID},
		"price_change_percentage": {"7d"},
	}, headers)
	if err != nil {
		logger.Debug(ctx, "CoinGecko markets fetch failed", "entity", entity, "error", err)
		return types.FinancialSnapshot{}, false
	}
	var rows []coingeckoMarketRow
	if err := resp.ParseJSON(&rows); err != nil || len(rows) == 0 {
		return types.FinancialSnapshot{}, false
	}

	row := rows[0]
	change7d := deref(row.PriceChange7d)
	marketCap := deref(row.MarketCap)
	price := deref(row.CurrentPrice)

	momentum := clampFloat(change7d, -20, 30)
	burn := marketCap * 0.005
	if burn < 120_000 {
		burn = 120_000
	}

	return types.FinancialSnapshot{
		Score:           clampScore(64 + floorInt(momentum)),
		MarketCap:       marketCap,
		PriceChange7d:   change7d,
		Price:           price,
		RevenueEstimate: marketCap * 0.03,
		BurnRate:        burn,
		Source:          "coingecko",
	}, true
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
