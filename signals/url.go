package signals

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"trustlens/config"
	"trustlens/types"
)

// FetchPage resolves a URL to its readable article text. Swappable for tests.
type FetchPage func(pageURL string) (title, text string, err error)

func readabilityFetch(pageURL string) (string, string, error) {
	article, err := readability.FromURL(pageURL, config.URLFetchTimeout)
	if err != nil {
		return "", "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.Title, article.TextContent, nil
}

// WithPageFetcher overrides the readability fetcher, used by tests.
func (c *Collector) WithPageFetcher(fetch FetchPage) *Collector {
	c.fetchPage = fetch
	return c
}

// collectURL fetches the page and feeds its readable text through the text
// pipeline. Page text is the primary signal here: a failed fetch fails the
// arm. Safety flags come from cheap structural heuristics on the URL itself.
func (c *Collector) collectURL(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, pageURL string) error {
	fetch := c.fetchPage
	if fetch == nil {
		fetch = readabilityFetch
	}

	title, text, err := fetch(pageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrimarySignalFailed, err)
	}
	bundle.ExtractedText = strings.TrimSpace(text)
	bundle.SafetyFlags = urlSafetyFlags(pageURL)

	combined := title + ". " + bundle.ExtractedText
	c.collectFromText(ctx, bundle, deg, combined)
	return nil
}

var suspiciousTLDs = map[string]bool{
	"zip": true, "mov": true, "click": true, "loan": true, "top": true,
	"gq": true, "tk": true, "ml": true,
}

// urlSafetyFlags flags structural red marks on the URL: cleartext transport,
// raw IP hosts, throwaway TLDs, and lookalike punycode hosts.
func urlSafetyFlags(pageURL string) []string {
	var flags []string

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return []string{"unparseable_url"}
	}
	if parsed.Scheme == "http" {
		flags = append(flags, "no_tls")
	}

	host := parsed.Hostname()
	if host != "" && strings.Trim(host, "0123456789.") == "" {
		flags = append(flags, "ip_host")
	}
	if strings.HasPrefix(host, "xn--") || strings.Contains(host, ".xn--") {
		flags = append(flags, "punycode_host")
	}
	if idx := strings.LastIndex(host, "."); idx != -1 {
		if suspiciousTLDs[host[idx+1:]] {
			flags = append(flags, "suspicious_tld")
		}
	}
	return flags
}
