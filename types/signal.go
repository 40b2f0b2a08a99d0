package types

// Source is a reference the verdict can point readers at.
type Source struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Credibility float64 `json:"credibility"`
}

// GroundingHit is one raw web-grounding result before it is turned into a
// Source. Relevance is a [0,1] rank score from the grounding backend.
type GroundingHit struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Snippet   string  `json:"snippet,omitempty"`
	Relevance float64 `json:"relevance"`
}

// SignalBundle aggregates everything collected for a single request. It is
// request-scoped: built once by the collector, fully settled before scoring,
// and never mutated afterwards or shared across requests.
type SignalBundle struct {
	RequestID   string      `json:"request_id"`
	ContentType ContentType `json:"content_type"`

	Claims []Claim `json:"claims"`

	Manipulated            bool    `json:"manipulated"`
	ManipulationConfidence float64 `json:"manipulation_confidence"`
	// ManipulationKnown is false when the detector degraded to its neutral
	// default, i.e. "unknown" rather than "safe".
	ManipulationKnown bool `json:"manipulation_known"`

	Transcript    string   `json:"transcript,omitempty"`
	ExtractedText string   `json:"extracted_text,omitempty"`
	EventLabels   []string `json:"event_labels,omitempty"`
	SafetyFlags   []string `json:"safety_flags,omitempty"`

	SourceCandidates []GroundingHit `json:"source_candidates,omitempty"`

	// Degraded lists the signals that fell back to a neutral default,
	// kept for observability only.
	Degraded []string `json:"degraded,omitempty"`
}

// VerdictCounts tallies claim verdicts in the bundle.
func (b *SignalBundle) VerdictCounts() (verified, disputed, unverified int) {
	for _, c := range b.Claims {
		switch c.Verdict {
		case VerdictVerified:
			verified++
		case VerdictDisputed:
			disputed++
		default:
			unverified++
		}
	}
	return
}

// AvgClaimConfidence is the mean confidence over all claims, 0 when none.
func (b *SignalBundle) AvgClaimConfidence() float64 {
	if len(b.Claims) == 0 {
		return 0
	}
	var sum float64
	for _, c := range b.Claims {
		sum += c.Confidence
	}
	return sum / float64(len(b.Claims))
}

// AuthenticityConfidence folds the manipulation signal into a single [0,1]
// "content looks authentic" confidence. An unknown detector result maps to
// the neutral 0.5 so a degraded check never reads as evidence either way.
func (b *SignalBundle) AuthenticityConfidence() float64 {
	if !b.ManipulationKnown {
		return 0.5
	}
	if b.Manipulated {
		return 1 - b.ManipulationConfidence
	}
	return b.ManipulationConfidence
}
