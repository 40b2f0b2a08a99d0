package sources

import (
	"errors"
	"testing"

	"github.com/mmcdole/gofeed"

	"trustlens/config"
)

func TestCredibilityFor(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want float64
	}{
		{"known domain", "https://www.reuters.com/fact-check/something", 0.95},
		{"subdomain resolves to registrable domain", "https://en.wikipedia.org/wiki/Earth", 0.75},
		{"unknown domain", "https://example-blog.net/post", DefaultCredibility},
		{"unparseable", "://not a url", DefaultCredibility},
		{"empty", "", DefaultCredibility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CredibilityFor(tt.url); got != tt.want {
				t.Errorf("CredibilityFor(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestFallbackSourcesAreValid(t *testing.T) {
	if len(FallbackSources) < 3 {
		t.Fatalf("need at least 3 static fallbacks, have %d", len(FallbackSources))
	}
	for _, s := range FallbackSources {
		if s.URL == "" || s.Title == "" {
			t.Errorf("fallback source missing fields: %+v", s)
		}
		if s.Credibility <= 0 || s.Credibility > 1 {
			t.Errorf("fallback %s credibility out of range: %v", s.URL, s.Credibility)
		}
	}
}

type fakeFeedParser struct {
	feeds map[string]*gofeed.Feed
	err   error
}

func (f fakeFeedParser) ParseURL(feedURL string) (*gofeed.Feed, error) {
	if f.err != nil {
		return nil, f.err
	}
	if feed, ok := f.feeds[feedURL]; ok {
		return feed, nil
	}
	return nil, errors.New("no such feed")
}

func TestPoolStartsWithStaticFallbacks(t *testing.T) {
	pool := NewPool()
	got := pool.Fallbacks()
	if len(got) != len(FallbackSources) {
		t.Fatalf("fresh pool has %d sources, want %d", len(got), len(FallbackSources))
	}
}

func TestPoolRefreshSwapsInFeedItems(t *testing.T) {
	feeds := make(map[string]*gofeed.Feed)
	for _, feedURL := range FactCheckFeeds {
		feeds[feedURL] = &gofeed.Feed{Items: []*gofeed.Item{
			{Title: "Checked claim", Link: "https://www.snopes.com/fact-check/example/"},
		}}
	}
	pool := NewPool().WithParser(fakeFeedParser{feeds: feeds})

	if err := pool.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	got := pool.Fallbacks()
	if len(got) != len(FactCheckFeeds) {
		t.Fatalf("pool holds %d sources, want one per feed", len(got))
	}
	for _, s := range got {
		if s.Credibility != 0.9 {
			t.Errorf("credibility for %s = %v, want snopes.com table score", s.URL, s.Credibility)
		}
	}
}

func TestPoolRefreshKeepsSetOnThinHarvest(t *testing.T) {
	feeds := map[string]*gofeed.Feed{
		FactCheckFeeds["snopes"]: {Items: []*gofeed.Item{
			{Title: "Lone item", Link: "https://www.snopes.com/fact-check/lone/"},
		}},
	}
	pool := NewPool().WithParser(fakeFeedParser{feeds: feeds})

	if err := pool.Refresh(); err == nil {
		t.Fatalf("expected error when harvest is below %d articles", config.MinSources)
	}
	if len(pool.Fallbacks()) != len(FallbackSources) {
		t.Error("thin refresh must keep the previous set")
	}
}

func TestPoolRefreshOrderIsStable(t *testing.T) {
	feeds := make(map[string]*gofeed.Feed)
	for name, feedURL := range FactCheckFeeds {
		feeds[feedURL] = &gofeed.Feed{Items: []*gofeed.Item{
			{Title: name, Link: "https://example.org/" + name + "/1"},
			{Title: name, Link: "https://example.org/" + name + "/2"},
		}}
	}
	pool := NewPool().WithParser(fakeFeedParser{feeds: feeds})

	if err := pool.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	first := pool.Fallbacks()

	want := []string{
		"https://example.org/factcheck/1",
		"https://example.org/fullfact/1",
		"https://example.org/politifact/1",
		"https://example.org/snopes/1",
		"https://example.org/factcheck/2",
		"https://example.org/fullfact/2",
		"https://example.org/politifact/2",
		"https://example.org/snopes/2",
	}
	if len(first) != len(want) {
		t.Fatalf("pool holds %d sources, want %d", len(first), len(want))
	}
	for i, s := range first {
		if s.URL != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, s.URL, want[i])
		}
	}

	if err := pool.Refresh(); err != nil {
		t.Fatalf("second Refresh failed: %v", err)
	}
	for i, s := range pool.Fallbacks() {
		if s.URL != first[i].URL {
			t.Errorf("order changed across refreshes at %d: %q vs %q", i, s.URL, first[i].URL)
		}
	}
}

func TestPoolRefreshAllFeedsFailing(t *testing.T) {
	pool := NewPool().WithParser(fakeFeedParser{err: errors.New("network down")})

	if err := pool.Refresh(); err == nil {
		t.Fatal("expected error when every feed fails")
	}
	if len(pool.Fallbacks()) != len(FallbackSources) {
		t.Error("failed refresh must keep the previous set")
	}
}
