package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"trustlens/collaborators"
	"trustlens/types"
)

// fakeChecker scripts fact-check outcomes per claim text.
type fakeChecker struct {
	results map[string]collaborators.FactCheckResult
	err     error
}

func (f *fakeChecker) FactCheck(_ context.Context, claim string) (collaborators.FactCheckResult, error) {
	if f.err != nil {
		return collaborators.FactCheckResult{}, f.err
	}
	if r, ok := f.results[claim]; ok {
		return r, nil
	}
	return collaborators.FactCheckResult{Verdict: types.VerdictUnverified, Confidence: 0.5}, nil
}

func TestVerifyAllPreservesOrder(t *testing.T) {
	texts := []string{"claim a", "claim b", "claim c"}
	checker := &fakeChecker{results: map[string]collaborators.FactCheckResult{
		"claim a": {Verdict: types.VerdictVerified, Confidence: 0.9},
		"claim b": {Verdict: types.VerdictDisputed, Confidence: 0.8},
		"claim c": {Verdict: types.VerdictVerified, Confidence: 0.7},
	}}

	got := NewVerifier(checker, nil).VerifyAll(context.Background(), texts)
	if len(got) != 3 {
		t.Fatalf("got %d claims; want 3", len(got))
	}
	for i, text := range texts {
		if got[i].Text != text {
			t.Errorf("claim %d = %q; want %q (insertion order)", i, got[i].Text, text)
		}
	}
	if got[1].Verdict != types.VerdictDisputed {
		t.Errorf("claim b verdict = %v", got[1].Verdict)
	}
}

func TestVerifyAllTotalCollaboratorFailure(t *testing.T) {
	checker := &fakeChecker{err: errors.New("backend unavailable")}
	got := NewVerifier(checker, nil).VerifyAll(context.Background(), []string{"one", "two", "three"})

	for _, c := range got {
		if c.Verdict != types.VerdictUnverified {
			t.Errorf("%q: verdict = %v; want UNVERIFIED", c.Text, c.Verdict)
		}
		if c.Confidence != 0.3 {
			t.Errorf("%q: confidence = %v; want 0.3", c.Text, c.Confidence)
		}
	}
}

// failOnceChecker fails a single claim; siblings must be unaffected.
type failOnceChecker struct {
	failClaim string
}

func (f *failOnceChecker) FactCheck(_ context.Context, claim string) (collaborators.FactCheckResult, error) {
	if claim == f.failClaim {
		return collaborators.FactCheckResult{}, errors.New("timeout")
	}
	return collaborators.FactCheckResult{Verdict: types.VerdictVerified, Confidence: 0.85}, nil
}

func TestVerifySiblingIsolation(t *testing.T) {
	v := NewVerifier(&failOnceChecker{failClaim: "bad"}, nil)
	got := v.VerifyAll(context.Background(), []string{"good 1", "bad", "good 2"})

	if got[0].Verdict != types.VerdictVerified || got[2].Verdict != types.VerdictVerified {
		t.Fatalf("sibling claims affected by one failure: %+v", got)
	}
	if got[1].Verdict != types.VerdictUnverified || got[1].Confidence != 0.3 {
		t.Fatalf("failed claim = %+v; want degraded default", got[1])
	}
}

func TestVerifyAllCapsInput(t *testing.T) {
	var texts []string
	for i := 0; i < 12; i++ {
		texts = append(texts, fmt.Sprintf("claim %d", i))
	}
	got := NewVerifier(&fakeChecker{}, nil).VerifyAll(context.Background(), texts)
	if len(got) != 5 {
		t.Fatalf("got %d; verification is capped at 5", len(got))
	}
}

func TestVerifyNilChecker(t *testing.T) {
	got := NewVerifier(nil, nil).Verify(context.Background(), "anything")
	if got.Verdict != types.VerdictUnverified || got.Confidence != 0.3 {
		t.Fatalf("nil checker should degrade, got %+v", got)
	}
	if !strings.Contains(got.Explanation, "unable to verify") {
		t.Fatalf("explanation = %q", got.Explanation)
	}
}
