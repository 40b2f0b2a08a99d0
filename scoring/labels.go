package scoring

import (
	"trustlens/config"
	"trustlens/types"
)

// Classify maps a settled bundle to a risk label. Evaluation starts from the
// YELLOW neutral default and applies the rules in fixed priority order; the
// first match wins, there is no combination logic. RED is checked before
// GREEN so confidently manipulated content stays RED even when every claim
// checks out.
func Classify(b *types.SignalBundle) types.RiskLabel {
	if b.Manipulated && b.ManipulationConfidence > config.HighManipulationThreshold {
		return types.RiskRed
	}

	if allClaimsVerified(b) && greenAuthenticity(b) {
		return types.RiskGreen
	}

	_, disputed, _ := b.VerdictCounts()
	if disputed > 0 ||
		(b.Manipulated && b.ManipulationConfidence > config.ModerateManipulationThreshold) ||
		b.AuthenticityConfidence() < 0.5 {
		return types.RiskOrange
	}

	return types.RiskYellow
}

// allClaimsVerified requires at least one claim: content with nothing
// checkable cannot earn GREEN, it stays at the neutral default.
func allClaimsVerified(b *types.SignalBundle) bool {
	if len(b.Claims) == 0 {
		return false
	}
	for _, c := range b.Claims {
		if c.Verdict != types.VerdictVerified {
			return false
		}
	}
	return true
}

// greenAuthenticity is the non-manipulation half of the GREEN rule. Text and
// url arms carry no media authenticity signal, so they qualify on claim
// confidence instead.
func greenAuthenticity(b *types.SignalBundle) bool {
	switch b.ContentType {
	case types.ContentText, types.ContentURL:
		return b.AvgClaimConfidence() > 0.7
	default:
		return !b.Manipulated
	}
}
