// Package claims extracts checkable factual statements from text and
// resolves each one to a verdict through the fact-check collaborator.
package claims

import (
	"regexp"
	"strings"

	"trustlens/config"
)

// Words that suggest a sentence asserts something checkable rather than
// opining or asking.
var factBearingMarkers = []string{
	" is ", " are ", " was ", " were ", " has ", " have ", " had ",
	" will ", " did ", " does ",
	"according to", "said", "says", "reported", "reports", "announced",
	"claims", "claimed", "confirmed", "revealed", "found that", "shows that",
	"stated",
}

var (
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	percentRe = regexp.MustCompile(`\d+(\.\d+)?\s?(%|percent)`)
	// Sentence boundary: terminator followed by whitespace (so decimals
	// like 4.2 stay intact), or a blank-line break.
	sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)
)

// Extract splits text into sentences and keeps the ones that look like
// checkable factual statements, capped at config.MaxClaims in original
// order. A pure function: same input, same output, and an empty result is a
// valid state, not an error.
func Extract(text string) []string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < config.MinInputLength {
		return nil
	}

	seen := make(map[string]bool)
	var out []string

	for _, raw := range sentenceSplitRe.Split(trimmed, -1) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) <= config.MinClaimLength {
			continue
		}
		if !factBearing(sentence) {
			continue
		}

		key := strings.ToLower(strings.TrimRight(sentence, ".!?"))
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, sentence)
		if len(out) == config.MaxClaims {
			break
		}
	}
	return out
}

func factBearing(sentence string) bool {
	lowered := strings.ToLower(sentence)
	for _, marker := range factBearingMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return yearRe.MatchString(sentence) || percentRe.MatchString(sentence)
}
