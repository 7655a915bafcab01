package social

import (
	"context"
	"net/url"
	"strings"

	"investai/internal/api"
	"investai/internal/logger"
)

// RedditCredentials are the authenticated-provider credentials from
// settings. Missing credentials simply disable the authenticated step.
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
				Score int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (l *redditListing) posts() (values []int, titles []string) {
	for _, child := range l.Data.Children {
		title := strings.TrimSpace(child.Data.Title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		values = append(values, child.Data.Score)
	}
	return values, titles
}

// redditOAuthProvider searches Reddit through the authenticated API using
// client-credentials OAuth, mirroring a script-type Reddit app.
type redditOAuthProvider struct {
	authClient *api.Client
	apiClient  *api.Client
	creds      func() RedditCredentials
}

func newRedditOAuthProvider(creds func() RedditCredentials) *redditOAuthProvider {
	return &redditOAuthProvider{
		authClient: api.NewClient(api.WithBaseURL("https://www.reddit.com")),
		apiClient:  api.NewClient(api.WithBaseURL("https://oauth.reddit.com")),
		creds:      creds,
	}
}

func (p *redditOAuthProvider) name() string { return "praw" }

func (p *redditOAuthProvider) fetch(ctx context.Context, entity string) (observation, bool) {
	creds := p.creds()
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return observation{}, false
	}
	userAgent := creds.UserAgent
	if userAgent == "" {
		userAgent = "InvestAI/1.0"
	}

	resp, err := p.authClient.PostForm(ctx, "/api/v1/access_token",
		url.Values{"grant_type": {"client_credentials"}},
		creds.ClientID, creds.ClientSecret,
		map[string]string{"User-Agent": userAgent})
	if err != nil {
		logger.Debug(ctx, "Reddit token request failed", "error", err)
		return observation{}, false
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.ParseJSON(&token); err != nil || token.AccessToken == "" {
		return observation{}, false
	}

	resp, err = p.apiClient.GET(ctx, "/r/all/search", url.Values{
		"q":     {entity},
		"sort":  {"relevance"},
		"t":     {"month"},
		"limit": {"20"},
	}, map[string]string{
		"Authorization": "Bearer " + token.AccessToken,
		"User-Agent":    userAgent,
	})
	if err != nil {
		logger.Debug(ctx, "Reddit authenticated search failed", "entity", entity, "error", err)
		return observation{}, false
	}
	var listing redditListing
	if err := resp.ParseJSON(&listing); err != nil {
		return observation{}, false
	}

	values, titles := listing.posts()
	if len(values) == 0 {
		return observation{}, false
	}
	return observe(values, titles, "praw"), true
}

// redditPublicProvider hits the unauthenticated search.json endpoint.
type redditPublicProvider struct {
	client    *api.Client
	userAgent func() string
}

func newRedditPublicProvider(userAgent func() string) *redditPublicProvider {
	return &redditPublicProvider{
		client:    api.NewClient(api.WithBaseURL("https://www.reddit.com")),
		userAgent: userAgent,
	}
}

func (p *redditPublicProvider) name() string { return "reddit-public" }

func (p *redditPublicProvider) fetch(ctx context.Context, entity string) (observation, bool) {
	query := strings.TrimSpace(entity)
	if query == "" {
		return observation{}, false
	}

	resp, err := p.client.GET(ctx, "/search.json", url.Values{
		"q":     {query},
		"sort":  {"top"},
		"limit": {"15"},
		"t":     {"month"},
	}, api.RedditHeaders(p.userAgent()))
	if err != nil {
		logger.Debug(ctx, "Reddit public search failed", "entity", entity, "error", err)
		return observation{}, false
	}
	var listing redditListing
	if err := resp.ParseJSON(&listing); err != nil {
		return observation{}, false
	}

	values, titles := listing.posts()
	if len(values) == 0 {
		return observation{}, false
	}
	return observe(values, titles, "reddit-public"), true
}
