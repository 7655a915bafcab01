package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"investai/internal/api"
)

func TestRedditPublicProviderParsesListing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("sort"); got != "top" {
			t.Errorf("Expected sort=top, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "15" {
			t.Errorf("Expected limit=15, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Acme to the moon","score":120}},
			{"data":{"title":"Acme is overrated","score":3}},
			{"data":{"title":"","score":999}}
		]}}`))
	}))
	defer ts.Close()

	p := &redditPublicProvider{
		client:    api.NewClient(api.WithBaseURL(ts.URL)),
		userAgent: func() string { return "" },
	}

	obs, ok := p.fetch(context.Background(), "Acme")
	if !ok {
		t.Fatal("Expected provider to resolve")
	}
	if obs.source != "reddit-public" {
		t.Errorf("Expected reddit-public source, got %q", obs.source)
	}
	// untitled post dropped: 2 samples, 1 positive
	if obs.sampleSize != 2 {
		t.Errorf("Expected sample size 2, got %d", obs.sampleSize)
	}
	if obs.ratio != 0.5 {
		t.Errorf("Expected ratio 0.5, got %f", obs.ratio)
	}
	if obs.topPost != "Acme to the moon" {
		t.Errorf("Unexpected top post %q", obs.topPost)
	}
}

func TestRedditPublicProviderEmptyListing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer ts.Close()

	p := &redditPublicProvider{
		client:    api.NewClient(api.WithBaseURL(ts.URL)),
		userAgent: func() string { return "" },
	}
	if _, ok := p.fetch(context.Background(), "Acme"); ok {
		t.Error("Expected empty listing to resolve as no-data")
	}
}

func TestRedditOAuthProviderRequiresCredentials(t *testing.T) {
	p := newRedditOAuthProvider(func() RedditCredentials { return RedditCredentials{} })
	if _, ok := p.fetch(context.Background(), "Acme"); ok {
		t.Error("Expected provider without credentials to decline")
	}
}

func TestRedditOAuthProviderSearch(t *testing.T) {
	var sawAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/access_token":
			if user, _, ok := r.BasicAuth(); !ok || user != "client-id" {
				t.Errorf("Expected basic auth with client id, got %q", user)
			}
			w.Write([]byte(`{"access_token":"tok-123"}`))
		case "/r/all/search":
			sawAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"data":{"children":[{"data":{"title":"thread","score":50}}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	p := &redditOAuthProvider{
		authClient: api.NewClient(api.WithBaseURL(ts.URL)),
		apiClient:  api.NewClient(api.WithBaseURL(ts.URL)),
		creds: func() RedditCredentials {
			return RedditCredentials{ClientID: "client-id", ClientSecret: "secret", UserAgent: "InvestAI/1.0"}
		},
	}

	obs, ok := p.fetch(context.Background(), "Acme")
	if !ok {
		t.Fatal("Expected provider to resolve")
	}
	if sawAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer token on search call, got %q", sawAuth)
	}
	if obs.source != "praw" {
		t.Errorf("Expected praw source, got %q", obs.source)
	}
	if obs.sampleSize != 1 || obs.ratio != 1.0 {
		t.Errorf("Unexpected observation %+v", obs)
	}
}
