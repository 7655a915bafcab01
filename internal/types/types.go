package types

// FinancialSnapshot holds the resolved financial metrics for an entity plus
// the provenance of the data ("coingecko", "yfinance", "demo" or "fallback").
type FinancialSnapshot struct {
	Score           int     `json:"score"`
	MarketCap       float64 `json:"market_cap"`
	PriceChange7d   float64 `json:"price_change_7d"`
	Price           float64 `json:"price"`
	RevenueEstimate float64 `json:"revenue_estimate"`
	BurnRate        float64 `json:"burn_rate"`
	Source          string  `json:"source"`
}

// FounderProfile is the synthetic founder reliability snapshot. Source is
// always "simulation".
type FounderProfile struct {
	Score       int      `json:"score"`
	Name        string   `json:"name"`
	Founders    []string `json:"founders"`
	Reliability int      `json:"reliability"`
	PastExits   int      `json:"past_exits"`
	RedFlags    string   `json:"red_flags"`
	Source      string   `json:"source"`
}

// SocialSnapshot holds social sentiment for an entity. Source is one of
// "praw", "reddit-public", "demo" or "fallback".
type SocialSnapshot struct {
	Score        int     `json:"score"`
	Sentiment    string  `json:"sentiment"`
	Intensity    int     `json:"intensity"`
	BullishRatio float64 `json:"bullish_ratio"`
	TopPost      string  `json:"top_post"`
	SampleSize   int     `json:"sample_size"`
	Source       string  `json:"source"`
}

// Weights is the fixed fusion weight triple. It always sums to 1.0.
type Weights struct {
	Financials float64 `json:"financials"`
	Founders   float64 `json:"founders"`
	Social     float64 `json:"social"`
}

// ResearchResult is the fused outcome of one analysis request. Immutable
// once built; owned by the result store after persistence.
type ResearchResult struct {
	Entity     string            `json:"entity"`
	Score      int               `json:"score"`
	Verdict    string            `json:"verdict"`
	Reason     string            `json:"reason"`
	Financials FinancialSnapshot `json:"financials"`
	Founders   FounderProfile    `json:"founders"`
	Social     SocialSnapshot    `json:"social"`
	Weights    Weights           `json:"weights"`
	Mode       string            `json:"mode"`
	Timestamp  string            `json:"timestamp"`
}

// Headline is one scraped news headline (supplementary /api/news data, not
// part of the scored result).
type Headline struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}
