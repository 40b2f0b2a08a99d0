package parsing

import (
	"encoding/json"
	"strings"
	"testing"

	"trustlens/types"
)

func TestParseVerdictWellFormed(t *testing.T) {
	in := VerdictResult{Verdict: types.VerdictVerified, Confidence: 0.85, Explanation: "Matches official records."}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out, stage := ParseVerdict(string(b))
	if stage != StageStrict {
		t.Fatalf("stage = %v; want strict", stage)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestParseVerdictFencedOutput(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"verdict\": \"DISPUTED\", \"confidence\": 0.9}\n```\nLet me know if you need more."
	out, stage := ParseVerdict(raw)
	if stage != StageStrict {
		t.Fatalf("stage = %v; want strict", stage)
	}
	if out.Verdict != types.VerdictDisputed || out.Confidence != 0.9 {
		t.Fatalf("got %+v", out)
	}
}

func TestParseVerdictRepairedStage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want types.Verdict
	}{
		{"trailing comma", `{"verdict": "VERIFIED", "confidence": 0.8,}`, types.VerdictVerified},
		{"bare keys", `{verdict: "DISPUTED", confidence: 0.7}`, types.VerdictDisputed},
		{"single quotes", `{'verdict': 'UNVERIFIED', 'confidence': 0.4}`, types.VerdictUnverified},
		{"smart quotes", "{“verdict”: “VERIFIED”, “confidence”: 0.6}", types.VerdictVerified},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, stage := ParseVerdict(c.raw)
			if stage != StageRepaired {
				t.Fatalf("stage = %v; want repaired", stage)
			}
			if out.Verdict != c.want {
				t.Fatalf("verdict = %v; want %v", out.Verdict, c.want)
			}
		})
	}
}

func TestParseVerdictHeuristicStage(t *testing.T) {
	cases := []struct {
		raw  string
		want types.Verdict
	}{
		{"The claim is false and has been widely debunked.", types.VerdictDisputed},
		{"This statement is accurate according to public data.", types.VerdictVerified},
		{"The framing here is misleading at best.", types.VerdictUnverified},
		// Disputed keywords take precedence over verified ones.
		{"It presents itself as true but the core figure is false.", types.VerdictDisputed},
	}
	for _, c := range cases {
		out, stage := ParseVerdict(c.raw)
		if stage != StageHeuristic {
			t.Fatalf("%q: stage = %v; want heuristic", c.raw, stage)
		}
		if out.Verdict != c.want {
			t.Fatalf("%q: verdict = %v; want %v", c.raw, out.Verdict, c.want)
		}
	}
}

func TestParseVerdictDefaultStage(t *testing.T) {
	for _, raw := range []string{"", "   ", "no structure here at all", "{...broken"} {
		out, stage := ParseVerdict(raw)
		if stage != StageDefault {
			t.Fatalf("%q: stage = %v; want default", raw, stage)
		}
		if out.Verdict != types.VerdictUnverified || out.Confidence != 0.3 {
			t.Fatalf("%q: default = %+v", raw, out)
		}
	}
}

func TestParseVerdictNeverPanicsAndStaysInRange(t *testing.T) {
	corpus := []string{
		"",
		"{",
		"}{",
		`{"verdict": "VERIFIED", "confidence": 17}`,
		`{"verdict": "VERIFIED", "confidence": -3}`,
		`{"verdict": "banana", "confidence": 0.5} but actually this is false`,
		`{"verdict": "VERIFIED", "confidence": 0.5, "explanation": "` + strings.Repeat("a", 5000) + `"}`,
		"\x00\x01\x02",
		`{"verdict": {"nested": "object"}, "confidence": []}`,
		"```json\n{truncated",
	}
	for _, raw := range corpus {
		out, _ := ParseVerdict(raw)
		if !out.Verdict.Valid() {
			t.Errorf("%.40q: invalid verdict %q", raw, out.Verdict)
		}
		if out.Confidence < 0 || out.Confidence > 1 {
			t.Errorf("%.40q: confidence %v out of range", raw, out.Confidence)
		}
	}
}

func TestParsePresentationMalformed(t *testing.T) {
	// Unquoted key, single quotes, trailing comma: must land on stage 2.
	raw := `{oneLineDescription: 'ok', sources: [{url: 'https://example.org', title: 'Example', credibility: 0.8}],}`
	out, stage := ParsePresentation(raw, PresentationResult{Summary: "fallback"})
	if stage != StageRepaired {
		t.Fatalf("stage = %v; want repaired", stage)
	}
	if out.OneLineDescription != "ok" {
		t.Fatalf("description = %q", out.OneLineDescription)
	}
	if len(out.Sources) != 1 || out.Sources[0].URL != "https://example.org" {
		t.Fatalf("sources = %+v", out.Sources)
	}
}

func TestDecodeRepairedAttemptStartsClean(t *testing.T) {
	// A strict parse can fail midway and leave a partial value in dst. The
	// repaired retry must not inherit fields the repaired input never sets.
	out := PresentationResult{EducationalInsight: "stale value"}
	stage, ok := decode(`{summary: 'fine'}`, &out, out.validate)
	if !ok || stage != StageRepaired {
		t.Fatalf("stage = %v, ok = %v; want repaired success", stage, ok)
	}
	if out.Summary != "fine" {
		t.Fatalf("summary = %q", out.Summary)
	}
	if out.EducationalInsight != "" {
		t.Errorf("insight = %q; want it cleared before the retry", out.EducationalInsight)
	}
}

func TestParsePresentationDefault(t *testing.T) {
	def := PresentationResult{OneLineDescription: "local summary", Summary: "built from counts"}
	out, stage := ParsePresentation("total garbage, no braces", def)
	if stage != StageDefault {
		t.Fatalf("stage = %v; want default", stage)
	}
	if out.OneLineDescription != def.OneLineDescription || out.Summary != def.Summary {
		t.Fatalf("got %+v; want declared default", out)
	}
}

func TestTruncateAtSentence(t *testing.T) {
	long := "The first sentence covers the basic claim in question. The second sentence adds supporting detail about it. " + strings.Repeat("x", 400)
	got := truncateAtSentence(long, 120)
	if len([]rune(got)) > 120 {
		t.Fatalf("len = %d; want <= 120", len([]rune(got)))
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("expected sentence boundary, got %q", got)
	}
}
