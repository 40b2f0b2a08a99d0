package parsing

import (
	"regexp"
	"strings"
)

// RepairStep is one pure, idempotent textual repair applied to model output
// that failed strict JSON parsing. Steps run in the fixed order of
// repairSteps; each is independently testable.
type RepairStep struct {
	Name  string
	Apply func(string) string
}

var repairSteps = []RepairStep{
	{"normalize_quotes", normalizeQuotes},
	{"strip_control_chars", stripControlChars},
	{"single_to_double_quotes", singleToDoubleQuotes},
	{"quote_bare_keys", quoteBareKeys},
	{"strip_trailing_commas", stripTrailingCommas},
	{"collapse_quote_runs", collapseQuoteRuns},
}

// RepairSteps exposes the ordered repair chain for step-level tests.
func RepairSteps() []RepairStep {
	return repairSteps
}

// applyRepairs runs every repair step in order.
func applyRepairs(s string) string {
	for _, step := range repairSteps {
		s = step.Apply(s)
	}
	return s
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left curly double
	"”", `"`, // right curly double
	"‘", "'", // left curly single
	"’", "'", // right curly single
	"«", `"`,
	"»", `"`,
)

// normalizeQuotes turns typographic quotes into straight ASCII quotes.
func normalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// stripControlChars drops control characters except the usual whitespace.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Single-quoted strings that contain no double quotes; converted wholesale.
var singleQuotedRe = regexp.MustCompile(`'([^'"]*)'`)

// singleToDoubleQuotes rewrites 'value' spans as "value".
func singleToDoubleQuotes(s string) string {
	return singleQuotedRe.ReplaceAllString(s, `"$1"`)
}

var bareKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// quoteBareKeys wraps unquoted object keys in double quotes.
func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// stripTrailingCommas removes commas immediately before } or ].
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, `$1`)
}

var quoteRunRe = regexp.MustCompile(`"{3,}`)

// collapseQuoteRuns reduces runs of three or more double quotes to one.
// Runs of exactly two are left alone: those are legitimate empty strings.
func collapseQuoteRuns(s string) string {
	return quoteRunRe.ReplaceAllString(s, `"`)
}
