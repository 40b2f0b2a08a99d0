package claims

import (
	"context"
	"log"
	"sync"

	"trustlens/collaborators"
	"trustlens/config"
	"trustlens/types"
)

// Verifier resolves extracted claim texts to verdicts via the fact-check
// collaborator. Claims are independent, so verification fans out
// concurrently; a single claim failing never affects its siblings.
type Verifier struct {
	checker collaborators.FactChecker
	cache   *collaborators.VerdictCache
}

// NewVerifier creates a verifier. cache may be nil to disable caching.
func NewVerifier(checker collaborators.FactChecker, cache *collaborators.VerdictCache) *Verifier {
	return &Verifier{checker: checker, cache: cache}
}

// degradedClaim is the documented low-confidence default for a claim whose
// check failed; UNVERIFIED, never silently treated as verified.
func degradedClaim(text string) types.Claim {
	return types.Claim{
		Text:        text,
		Verdict:     types.VerdictUnverified,
		Confidence:  config.DefaultFactCheckConfidence,
		Explanation: "unable to verify",
	}
}

// Verify resolves one claim. It never returns an error: collaborator failure
// degrades to the documented default.
func (v *Verifier) Verify(ctx context.Context, text string) types.Claim {
	if v.checker == nil {
		return degradedClaim(text)
	}

	if cached, ok := v.cache.Get(ctx, text); ok {
		return types.Claim{Text: text, Verdict: cached.Verdict, Confidence: cached.Confidence, Explanation: cached.Explanation}
	}

	result, err := v.checker.FactCheck(ctx, text)
	if err != nil {
		log.Printf("Warning: fact check failed for %.60q: %v", text, err)
		return degradedClaim(text)
	}
	if !result.Verdict.Valid() {
		result.Verdict = types.VerdictUnverified
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	v.cache.Set(ctx, text, result)
	return types.Claim{Text: text, Verdict: result.Verdict, Confidence: result.Confidence, Explanation: result.Explanation}
}

// VerifyAll verifies up to config.MaxClaims claims concurrently, preserving
// input order in the result. Waits for every check to settle; there is no
// fail-fast path.
func (v *Verifier) VerifyAll(ctx context.Context, texts []string) []types.Claim {
	if len(texts) > config.MaxClaims {
		texts = texts[:config.MaxClaims]
	}
	if len(texts) == 0 {
		return nil
	}

	results := make([]types.Claim, len(texts))
	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			results[i] = v.Verify(ctx, text)
		}(i, text)
	}
	wg.Wait()
	return results
}
