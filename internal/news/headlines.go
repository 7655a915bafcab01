// Package news scrapes recent headlines about an entity. This is
// supplementary context for the UI; it never feeds the research score.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"investai/internal/logger"
	"investai/internal/types"
)

// Scraper fetches entity headlines from Google News.
type Scraper struct {
	timeout      time.Duration
	maxHeadlines int
}

// NewScraper creates a headline scraper.
func NewScraper(timeout time.Duration, maxHeadlines int) *Scraper {
	if maxHeadlines < 1 {
		maxHeadlines = 15
	}
	return &Scraper{timeout: timeout, maxHeadlines: maxHeadlines}
}

// Headlines scrapes up to maxHeadlines recent headlines for entity.
func (s *Scraper) Headlines(ctx context.Context, entity string) ([]types.Headline, error) {
	headlines := []types.Headline{}

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com", "www.google.com"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= s.maxHeadlines {
			return
		}
		title, link := extractHeadline(e.DOM)
		if title == "" || link == "" {
			return
		}
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}
		headlines = append(headlines, types.Headline{
			Title:  title,
			URL:    link,
			Source: "GoogleNews",
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "Headline scraping error", "entity", entity, "url", r.Request.URL.String(), "error", err)
	})

	searchQuery := url.QueryEscape(entity + " news")
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", searchQuery)
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Info(ctx, "Headline scraping completed", "entity", entity, "headlines", len(headlines))
	return headlines, nil
}

func extractHeadline(sel *goquery.Selection) (title, link string) {
	title = strings.TrimSpace(sel.Find("h3, h4").First().Text())
	if title == "" {
		title = strings.TrimSpace(sel.Find("a").First().Text())
	}
	link, _ = sel.Find("a").First().Attr("href")
	return title, link
}
