package sources

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/mmcdole/gofeed"
	"github.com/robfig/cron/v3"

	"trustlens/config"
	"trustlens/types"
)

// FactCheckFeeds are the RSS feeds the pool refreshes from.
var FactCheckFeeds = map[string]string{
	"snopes":     "https://www.snopes.com/feed/",
	"politifact": "https://www.politifact.com/rss/all/",
	"fullfact":   "https://fullfact.org/feed/all/",
	"factcheck":  "https://www.factcheck.org/feed/",
}

const maxItemsPerFeed = 10

// FeedParser parses one feed URL. Swappable for tests.
type FeedParser interface {
	ParseURL(feedURL string) (*gofeed.Feed, error)
}

// Pool keeps a rotating set of recent fact-check articles to pad results
// with when grounding comes back thin. It starts seeded with the static
// fallbacks and replaces them once a refresh succeeds.
type Pool struct {
	parser FeedParser
	cron   *cron.Cron

	mu     sync.RWMutex
	recent []types.Source
}

// NewPool creates a pool seeded with the static fallback sources.
func NewPool() *Pool {
	return &Pool{
		parser: gofeed.NewParser(),
		cron:   cron.New(),
		recent: FallbackSources,
	}
}

// WithParser swaps the feed parser, used by tests.
func (p *Pool) WithParser(parser FeedParser) *Pool {
	p.parser = parser
	return p
}

// Refresh pulls every fact-check feed and swaps in the fresh set. Feeds fail
// independently; the pool only keeps its previous set when all of them fail.
func (p *Pool) Refresh() error {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		fresh   []types.Source
		failed  int
		ordered = make(map[string][]types.Source)
	)

	for name, feedURL := range FactCheckFeeds {
		wg.Add(1)
		go func(name, feedURL string) {
			defer wg.Done()
			items, err := p.fetchFeed(feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Warning: failed to refresh %s feed: %v", name, err)
				failed++
				return
			}
			ordered[name] = items
		}(name, feedURL)
	}
	wg.Wait()

	if failed == len(FactCheckFeeds) {
		return fmt.Errorf("all %d fact-check feeds failed", failed)
	}

	names := make([]string, 0, len(FactCheckFeeds))
	for name := range FactCheckFeeds {
		names = append(names, name)
	}
	sort.Strings(names)

	// Interleave feeds in stable name order so one outlet cannot dominate
	// the pool and the padding order survives refreshes.
	for i := 0; i < maxItemsPerFeed; i++ {
		for _, name := range names {
			items := ordered[name]
			if i < len(items) {
				fresh = append(fresh, items[i])
			}
		}
	}

	// A near-empty harvest cannot back the assembler's source floor; keep
	// the previous set instead.
	if len(fresh) < config.MinSources {
		return fmt.Errorf("refresh yielded only %d articles, keeping previous set", len(fresh))
	}

	p.mu.Lock()
	p.recent = fresh
	p.mu.Unlock()
	log.Printf("✓ Source pool refreshed: %d articles from %d feeds", len(fresh), len(FactCheckFeeds)-failed)
	return nil
}

func (p *Pool) fetchFeed(feedURL string) ([]types.Source, error) {
	feed, err := p.parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxItemsPerFeed)
	items := make([]types.Source, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item.Link == "" {
			continue
		}
		items = append(items, types.Source{
			URL:         item.Link,
			Title:       item.Title,
			Credibility: CredibilityFor(item.Link),
		})
	}
	return items, nil
}

// Fallbacks returns the current padding set: recent fact-check articles when
// a refresh has succeeded, the static list otherwise. The returned slice is
// a copy.
func (p *Pool) Fallbacks() []types.Source {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]types.Source, len(p.recent))
	copy(out, p.recent)
	return out
}

// StartCron schedules periodic refreshes and runs one immediately in the
// background.
func (p *Pool) StartCron(schedule string) error {
	if _, err := p.cron.AddFunc(schedule, func() {
		if err := p.Refresh(); err != nil {
			log.Printf("Warning: scheduled source refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule source refresh: %w", err)
	}
	p.cron.Start()
	go func() {
		if err := p.Refresh(); err != nil {
			log.Printf("Warning: initial source refresh failed: %v", err)
		}
	}()
	return nil
}

// Stop halts the refresh schedule.
func (p *Pool) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}
