package parsing

import (
	"errors"
	"strings"

	"trustlens/config"
	"trustlens/types"
)

// VerdictResult is the declared shape for fact-check collaborator output.
type VerdictResult struct {
	Verdict     types.Verdict `json:"verdict"`
	Confidence  float64       `json:"confidence"`
	Explanation string        `json:"explanation,omitempty"`
}

// DefaultVerdict is the stage-4 safe default: unverified at the documented
// low confidence, never silently treated as verified.
func DefaultVerdict() VerdictResult {
	return VerdictResult{
		Verdict:     types.VerdictUnverified,
		Confidence:  config.DefaultFactCheckConfidence,
		Explanation: "unable to verify",
	}
}

// verdictAliases maps loose collaborator vocabulary onto the three verdicts.
var verdictAliases = map[string]types.Verdict{
	"verified":    types.VerdictVerified,
	"true":        types.VerdictVerified,
	"accurate":    types.VerdictVerified,
	"supported":   types.VerdictVerified,
	"disputed":    types.VerdictDisputed,
	"false":       types.VerdictDisputed,
	"refuted":     types.VerdictDisputed,
	"unverified":  types.VerdictUnverified,
	"unsupported": types.VerdictUnverified,
	"mixed":       types.VerdictUnverified,
	"unknown":     types.VerdictUnverified,
}

func (r *VerdictResult) normalize() error {
	v, ok := verdictAliases[strings.ToLower(strings.TrimSpace(string(r.Verdict)))]
	if !ok {
		return errors.New("unrecognized verdict")
	}
	r.Verdict = v
	r.Confidence = clamp01(r.Confidence)
	r.Explanation = truncateAtSentence(r.Explanation, config.MaxExplanationLength)
	return nil
}

// Keyword classes for the stage-3 heuristic, applied in fixed precedence
// order: the first matching class wins.
var verdictKeywordClasses = []struct {
	verdict    types.Verdict
	confidence float64
	keywords   []string
}{
	{types.VerdictDisputed, 0.6, []string{"false", "incorrect", "inaccurate", "debunked", "fabricated", "untrue"}},
	{types.VerdictVerified, 0.6, []string{"true", "accurate", "correct", "confirmed", "verified"}},
	{types.VerdictUnverified, 0.5, []string{"misleading", "mixed", "partially", "unclear", "cannot verify"}},
}

// ParseVerdict recovers a VerdictResult from free-form fact-check output.
// It never fails: the chain ends in DefaultVerdict.
func ParseVerdict(raw string) (VerdictResult, Stage) {
	var out VerdictResult
	if stage, ok := decode(raw, &out, out.normalize); ok {
		// normalize mutates in place, run once more on the winning decode
		_ = out.normalize()
		return out, stage
	}

	lowered := strings.ToLower(raw)
	for _, class := range verdictKeywordClasses {
		for _, kw := range class.keywords {
			if strings.Contains(lowered, kw) {
				out = VerdictResult{
					Verdict:     class.verdict,
					Confidence:  class.confidence,
					Explanation: truncateAtSentence(strings.TrimSpace(raw), config.MaxExplanationLength),
				}
				logStage("verdict", StageHeuristic)
				return out, StageHeuristic
			}
		}
	}

	logStage("verdict", StageDefault)
	return DefaultVerdict(), StageDefault
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// truncateAtSentence clips s to at most max characters, preferring to end on
// a sentence boundary when one exists in the kept prefix.
func truncateAtSentence(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	clipped := string(runes[:max])
	if idx := strings.LastIndexAny(clipped, ".!?"); idx > max/2 {
		return clipped[:idx+1]
	}
	return strings.TrimSpace(clipped)
}
