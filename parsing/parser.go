package parsing

import (
	"encoding/json"
	"log"
	"reflect"
	"strings"
)

// Stage records which rung of the fallback chain produced a value.
type Stage int

const (
	// StageStrict means the outermost brace span parsed as-is.
	StageStrict Stage = iota + 1
	// StageRepaired means the fixed repair sequence made it parse.
	StageRepaired
	// StageHeuristic means keyword scanning synthesized a value.
	StageHeuristic
	// StageDefault means the caller-declared safe default was returned.
	StageDefault
)

func (s Stage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageRepaired:
		return "repaired"
	case StageHeuristic:
		return "heuristic"
	case StageDefault:
		return "default"
	}
	return "unknown"
}

// Degraded reports whether the value came from a fallback rather than the
// collaborator's own structure.
func (s Stage) Degraded() bool {
	return s >= StageHeuristic
}

// extractJSON strips code-fence markers and surrounding prose, then returns
// the outermost {...} span. The brace search is deliberately loose (first '{'
// to last '}'); downstream schema validation is the real correctness gate.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decode attempts stages 1 and 2 of the fallback chain: strict parse of the
// extracted span, then the repair sequence plus a retry. validate is the
// schema gate; a decoded value that fails it does not count as recovered.
func decode(raw string, dst any, validate func() error) (Stage, bool) {
	span, ok := extractJSON(raw)
	if !ok {
		return 0, false
	}

	if err := json.Unmarshal([]byte(span), dst); err == nil {
		if validate == nil || validate() == nil {
			return StageStrict, true
		}
	}

	// A failed Unmarshal can leave a partial decode in dst; reset it so the
	// repaired attempt starts clean.
	reflect.ValueOf(dst).Elem().SetZero()

	repaired := applyRepairs(span)
	if err := json.Unmarshal([]byte(repaired), dst); err == nil {
		if validate == nil || validate() == nil {
			return StageRepaired, true
		}
	}
	return 0, false
}

// logStage records which stage produced the value; failure-rate observability
// only, never correctness.
func logStage(schema string, stage Stage) {
	if stage.Degraded() {
		log.Printf("parser: %s recovered via %s fallback", schema, stage)
	}
}
