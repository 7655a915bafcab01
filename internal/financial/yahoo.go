package financial

import (
	"context"
	"net/url"
	"strings"

	"investai/internal/api"
	"investai/internal/logger"
	"investai/internal/types"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// yahooProvider looks the entity up as an equity ticker. It is attempted
// whenever the crypto path produced nothing, regardless of the crypto
// heuristic: the heuristic only picks the first attempt, it is not
// exclusive.
type yahooProvider struct {
	client *api.Client
}

func newYahooProvider() *yahooProvider {
	return &yahooProvider{
		client: api.NewClient(api.WithBaseURL(yahooBaseURL)),
	}
}

func (p *yahooProvider) name() string { return "yfinance" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				MarketCap          rawValue `json:"marketCap"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
			} `json:"price"`
			FinancialData struct {
				TotalRevenue rawValue `json:"totalRevenue"`
				CurrentPrice rawValue `json:"currentPrice"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw float64 `json:"raw"`
}

func (p *yahooProvider) fetch(ctx context.Context, entity string) (types.FinancialSnapshot, bool) {
	ticker := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(entity, "$", "")))
	if ticker == "" {
		return types.FinancialSnapshot{}, false
	}

	resp, err := p.client.GET(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), url.Values{
		"range":    {"7d"},
		"interval": {"1d"},
	}, api.YahooFinanceHeaders())
	if err != nil {
		logger.Debug(ctx, "Yahoo chart fetch failed", "ticker", ticker, "error", err)
		return types.FinancialSnapshot{}, false
	}
	var chart yahooChartResponse
	if err := resp.ParseJSON(&chart); err != nil || len(chart.Chart.Result) == 0 {
		return types.FinancialSnapshot{}, false
	}

	result := chart.Chart.Result[0]
	change7d := closeToCloseChange(result.Indicators.Quote)
	price := result.Meta.RegularMarketPrice

	var marketCap, revenue float64
	sr, err := p.client.GET(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), url.Values{
		"modules": {"price,financialData"},
	}, api.YahooFinanceHeaders())
	if err == nil {
		var summary yahooQuoteSummaryResponse
		if err := sr.ParseJSON(&summary); err == nil && len(summary.QuoteSummary.Result) > 0 {
			row := summary.QuoteSummary.Result[0]
			marketCap = row.Price.MarketCap.Raw
			revenue = row.FinancialData.TotalRevenue.Raw
			if row.FinancialData.CurrentPrice.Raw != 0 {
				price = row.FinancialData.CurrentPrice.Raw
			}
		}
	}

	if price == 0 && marketCap == 0 {
		return types.FinancialSnapshot{}, false
	}

	burn := marketCap * 0.004
	if revenue > 0 {
		burn = revenue * 0.012
	}
	if burn < 80_000 {
		burn = 80_000
	}

	return types.FinancialSnapshot{
		Score:           clampScore(58 + floorInt(clampFloat(change7d, -15, 22))),
		MarketCap:       marketCap,
		PriceChange7d:   change7d,
		Price:           price,
		RevenueEstimate: revenue,
		BurnRate:        burn,
		Source:          "yfinance",
	}, true
}

// closeToCloseChange computes the 7-day percent change from the first to
// the last non-null daily close.
func closeToCloseChange(quotes []struct {
	Close []*float64 `json:"close"`
}) float64 {
	if len(quotes) == 0 {
		return 0
	}
	var closes []float64
	for _, c := range quotes[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) < 2 || closes[0] == 0 {
		return 0
	}
	first, last := closes[0], closes[len(closes)-1]
	return (last - first) / first * 100.0
}
