// Package scoring turns a settled signal bundle into bounded trust scores
// and a risk label. Everything here is a pure function of the bundle:
// recomputing on the same bundle yields identical results.
package scoring

import (
	"math"

	"trustlens/types"
)

// explainabilityWeights mixes the two sub-scores and the average claim
// confidence per content type (w1+w2+w3 = 1). The per-arm values are
// calibrated constants; changing them is a behavioral change.
type weights struct {
	Integrity    float64
	Authenticity float64
	Claims       float64
}

var explainabilityWeights = map[types.ContentType]weights{
	types.ContentText:  {0.4, 0.3, 0.3},
	types.ContentURL:   {0.5, 0.2, 0.3},
	types.ContentImage: {0.3, 0.4, 0.3},
	types.ContentVideo: {0.3, 0.4, 0.3},
	types.ContentAudio: {0.4, 0.4, 0.2},
}

// authenticityWeight scales how hard the manipulation signal and disputed
// rate move content authenticity. Visual media gets the heavier pair.
var authenticityWeight = map[types.ContentType]float64{
	types.ContentText:  20,
	types.ContentURL:   20,
	types.ContentImage: 30,
	types.ContentVideo: 30,
	types.ContentAudio: 20,
}

// Score derives the three bounded sub-scores from the bundle. Every value is
// clamped to [0,100] before it leaves here; nothing downstream re-derives or
// adjusts scores.
func Score(b *types.SignalBundle) types.TrustScores {
	verified, disputed, _ := b.VerdictCounts()
	total := len(b.Claims)

	verificationRate := float64(verified) / math.Max(1, float64(total))
	disputedRate := float64(disputed) / math.Max(1, float64(total))

	sourceCount := len(b.SourceCandidates)
	sourceIntegrity := clamp100(math.Round(verificationRate*80 + math.Min(20, float64(sourceCount)*5)))

	w := authenticityWeight[b.ContentType]
	if w == 0 {
		w = 20
	}
	base := 80.0
	if b.Manipulated {
		base = 20.0
	}
	contentAuthenticity := clamp100(math.Round(math.Max(0, base+b.ManipulationConfidence*w-disputedRate*w)))

	ew, ok := explainabilityWeights[b.ContentType]
	if !ok {
		ew = explainabilityWeights[types.ContentText]
	}
	trustExplainability := clamp100(math.Round(
		float64(sourceIntegrity)*ew.Integrity +
			float64(contentAuthenticity)*ew.Authenticity +
			b.AvgClaimConfidence()*100*ew.Claims))

	return types.TrustScores{
		SourceIntegrity:     sourceIntegrity,
		ContentAuthenticity: contentAuthenticity,
		TrustExplainability: trustExplainability,
	}
}

func clamp100(f float64) int {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}
