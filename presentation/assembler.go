// Package presentation turns a settled signal bundle into the user-facing
// parts of the unified result: the one-line description, summary,
// educational insight, and the curated source list.
package presentation

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"trustlens/collaborators"
	"trustlens/config"
	"trustlens/parsing"
	"trustlens/sources"
	"trustlens/types"
)

// FallbackProvider hands out padding sources when grounding came back thin.
type FallbackProvider interface {
	Fallbacks() []types.Source
}

// Assembler builds presentation copy. The generator and pool may both be
// nil; the assembler then synthesizes everything locally.
type Assembler struct {
	generator collaborators.PresentationGenerator
	pool      FallbackProvider
}

// NewAssembler creates an assembler over the given generator and fallback
// pool.
func NewAssembler(generator collaborators.PresentationGenerator, pool FallbackProvider) *Assembler {
	return &Assembler{generator: generator, pool: pool}
}

// Assemble produces the presentation fields for a bundle. It never fails:
// generator trouble falls back to locally synthesized copy, and the source
// list is always within [MinSources, MaxSources].
func (a *Assembler) Assemble(ctx context.Context, bundle *types.SignalBundle) parsing.PresentationResult {
	candidates := rankCandidates(bundle.SourceCandidates)
	def := a.synthesize(bundle)

	result := def
	if a.generator != nil {
		raw, err := a.generator.GeneratePresentation(ctx, bundle, candidates)
		if err != nil {
			log.Printf("Warning: presentation generation failed: %v", err)
		} else {
			result, _ = parsing.ParsePresentation(raw, def)
		}
	}

	result.OneLineDescription = truncateOneLine(firstNonEmpty(result.OneLineDescription, def.OneLineDescription))
	result.Summary = firstNonEmpty(result.Summary, def.Summary)
	result.EducationalInsight = firstNonEmpty(result.EducationalInsight, def.EducationalInsight)
	result.Sources = a.mergeSources(result.Sources, candidates)
	return result
}

// rankCandidates turns grounding hits into sources ordered by relevance,
// scoring credibility from the domain table.
func rankCandidates(hits []types.GroundingHit) []types.Source {
	ranked := make([]types.GroundingHit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	out := make([]types.Source, 0, len(ranked))
	for _, h := range ranked {
		if h.URL == "" {
			continue
		}
		title := h.Title
		if title == "" {
			title = h.URL
		}
		out = append(out, types.Source{
			URL:         h.URL,
			Title:       title,
			Credibility: sources.CredibilityFor(h.URL),
		})
	}
	return out
}

// mergeSources combines generator-proposed and grounded sources, generator
// first, de-duplicating on URL with first-wins, then enforces the floor and
// cap.
func (a *Assembler) mergeSources(proposed, grounded []types.Source) []types.Source {
	seen := make(map[string]bool)
	var merged []types.Source
	appendSet := func(set []types.Source) {
		for _, s := range set {
			if s.URL == "" || seen[s.URL] || len(merged) == config.MaxSources {
				continue
			}
			seen[s.URL] = true
			merged = append(merged, s)
		}
	}

	appendSet(proposed)
	appendSet(grounded)
	if len(merged) < config.MinSources {
		appendSet(a.fallbacks())
	}
	// The live pool can run thin; the static list guarantees the floor.
	if len(merged) < config.MinSources {
		appendSet(sources.FallbackSources)
	}
	return merged
}

func (a *Assembler) fallbacks() []types.Source {
	if a.pool != nil {
		if fb := a.pool.Fallbacks(); len(fb) > 0 {
			return fb
		}
	}
	return sources.FallbackSources
}

// synthesize builds presentation copy from the bundle alone, used as both
// the parse-chain default and the no-generator path.
func (a *Assembler) synthesize(bundle *types.SignalBundle) parsing.PresentationResult {
	verified, disputed, unverified := bundle.VerdictCounts()
	total := verified + disputed + unverified

	var desc, summary string
	switch {
	case bundle.ManipulationKnown && bundle.Manipulated:
		desc = "Content shows signs of manipulation."
		summary = fmt.Sprintf("Automated analysis flagged this %s as likely manipulated (confidence %.0f%%).",
			bundle.ContentType, bundle.ManipulationConfidence*100)
	case disputed > 0:
		desc = fmt.Sprintf("%d of %d checked claims were disputed.", disputed, total)
		summary = fmt.Sprintf("Fact-checking disputed %d of the %d claims found in this %s; treat its assertions with care.",
			disputed, total, bundle.ContentType)
	case total > 0 && verified == total:
		desc = fmt.Sprintf("All %d checked claims were verified.", total)
		summary = fmt.Sprintf("Fact-checking verified every claim found in this %s against independent sources.",
			bundle.ContentType)
	case total > 0:
		desc = fmt.Sprintf("%d of %d claims could not be verified.", unverified, total)
		summary = fmt.Sprintf("Fact-checking could not confirm %d of the %d claims found in this %s.",
			unverified, total, bundle.ContentType)
	default:
		desc = "No checkable claims were found."
		summary = fmt.Sprintf("This %s contained no statements that automated fact-checking could evaluate.",
			bundle.ContentType)
	}

	insight := "Cross-check surprising claims against established outlets before sharing."
	if len(bundle.Degraded) > 0 {
		insight = "Parts of this analysis ran in degraded mode; verify independently before relying on it."
	}

	return parsing.PresentationResult{
		OneLineDescription: desc,
		Summary:            summary,
		EducationalInsight: insight,
	}
}

// WorstCase is the predefined result for a request whose primary signal
// never materialized. It is deliberately pessimistic: RED with zeroed
// scores, padded only with reference sources.
func WorstCase(requestID string, contentType types.ContentType, reason string) types.UnifiedResult {
	return types.UnifiedResult{
		RequestID:          requestID,
		ContentType:        contentType,
		Label:              types.RiskRed,
		OneLineDescription: "Analysis could not be completed; treat this content with maximum caution.",
		Summary: fmt.Sprintf("The analysis pipeline could not obtain a usable signal from this %s (%s). "+
			"Without verifiable signals the content is reported at the highest risk level.", contentType, reason),
		EducationalInsight: "When content cannot be analyzed, assume nothing about its accuracy.",
		Sources:            sources.FallbackSources[:config.MinSources],
		Scores:             types.TrustScores{},
	}
}

// truncateOneLine clips to the one-liner limit, counting runes so multi-byte
// text stays valid, preferring to end on a word boundary.
func truncateOneLine(s string) string {
	runes := []rune(s)
	if len(runes) <= config.MaxOneLineLength {
		return s
	}
	clipped := string(runes[:config.MaxOneLineLength-3])
	if cut := strings.LastIndex(clipped, " "); cut >= config.MaxOneLineLength/2 {
		clipped = clipped[:cut]
	}
	return clipped + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
