package types

// Verdict is the resolution assigned to a single claim.
type Verdict string

const (
	VerdictVerified   Verdict = "VERIFIED"
	VerdictDisputed   Verdict = "DISPUTED"
	VerdictUnverified Verdict = "UNVERIFIED"
)

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictVerified, VerdictDisputed, VerdictUnverified:
		return true
	}
	return false
}

// Claim is a single extracted factual statement and its verification outcome.
// The extractor fills Text; the verifier completes Verdict/Confidence and the
// claim is immutable afterwards.
type Claim struct {
	Text        string  `json:"text"`
	Verdict     Verdict `json:"verdict"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation,omitempty"`
}
