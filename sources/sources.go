// Package sources maintains the reference-source material used to pad thin
// results: a static fallback list of fact-checking outlets, a domain
// credibility table, and a live pool refreshed from fact-check RSS feeds.
package sources

import (
	"net/url"
	"strings"

	"trustlens/types"
)

// FallbackSources are always-valid reference outlets. The presentation
// assembler pads with these when grounding produced fewer sources than the
// minimum the result contract requires.
var FallbackSources = []types.Source{
	{URL: "https://www.reuters.com/fact-check/", Title: "Reuters Fact Check", Credibility: 0.95},
	{URL: "https://apnews.com/hub/ap-fact-check", Title: "AP Fact Check", Credibility: 0.95},
	{URL: "https://www.snopes.com/", Title: "Snopes", Credibility: 0.9},
	{URL: "https://www.politifact.com/", Title: "PolitiFact", Credibility: 0.9},
	{URL: "https://fullfact.org/", Title: "Full Fact", Credibility: 0.9},
}

// DefaultCredibility is used for domains not in the table.
const DefaultCredibility = 0.6

// domainCredibility scores well-known outlets by registrable domain.
var domainCredibility = map[string]float64{
	"reuters.com":        0.95,
	"apnews.com":         0.95,
	"bbc.com":            0.9,
	"bbc.co.uk":          0.9,
	"nature.com":         0.95,
	"science.org":        0.95,
	"snopes.com":         0.9,
	"politifact.com":     0.9,
	"fullfact.org":       0.9,
	"factcheck.org":      0.9,
	"afp.com":            0.9,
	"nytimes.com":        0.85,
	"washingtonpost.com": 0.85,
	"theguardian.com":    0.85,
	"wsj.com":            0.85,
	"economist.com":      0.85,
	"npr.org":            0.85,
	"who.int":            0.95,
	"cdc.gov":            0.95,
	"nih.gov":            0.95,
	"wikipedia.org":      0.75,
}

// CredibilityFor scores a source URL by its domain, walking subdomains down
// to the registrable domain before falling back to the default.
func CredibilityFor(sourceURL string) float64 {
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Hostname() == "" {
		return DefaultCredibility
	}
	host := strings.ToLower(parsed.Hostname())

	parts := strings.Split(host, ".")
	for i := 0; i < len(parts)-1; i++ {
		if score, ok := domainCredibility[strings.Join(parts[i:], ".")]; ok {
			return score
		}
	}
	return DefaultCredibility
}
