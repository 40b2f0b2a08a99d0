package scoring

import (
	"testing"

	"trustlens/types"
)

func TestClassifyRuleTable(t *testing.T) {
	cases := []struct {
		name   string
		bundle types.SignalBundle
		want   types.RiskLabel
	}{
		{
			"high confidence manipulation",
			types.SignalBundle{ContentType: types.ContentVideo, Manipulated: true, ManipulationConfidence: 0.9, ManipulationKnown: true},
			types.RiskRed,
		},
		{
			"red dominates green",
			types.SignalBundle{
				ContentType:            types.ContentVideo,
				Claims:                 claimSet(3, 0, 0, 0.9),
				Manipulated:            true,
				ManipulationConfidence: 0.9,
				ManipulationKnown:      true,
			},
			types.RiskRed,
		},
		{
			"all verified clean media",
			types.SignalBundle{
				ContentType:            types.ContentImage,
				Claims:                 claimSet(2, 0, 0, 0.8),
				ManipulationKnown:      true,
				ManipulationConfidence: 0.8,
			},
			types.RiskGreen,
		},
		{
			"all verified confident text",
			types.SignalBundle{ContentType: types.ContentText, Claims: claimSet(3, 0, 0, 0.9)},
			types.RiskGreen,
		},
		{
			"all verified but low confidence text",
			types.SignalBundle{ContentType: types.ContentText, Claims: claimSet(3, 0, 0, 0.5)},
			types.RiskYellow,
		},
		{
			"disputed claim",
			types.SignalBundle{ContentType: types.ContentText, Claims: claimSet(2, 1, 0, 0.8)},
			types.RiskOrange,
		},
		{
			"moderate manipulation",
			types.SignalBundle{ContentType: types.ContentImage, Manipulated: true, ManipulationConfidence: 0.6, ManipulationKnown: true},
			types.RiskOrange,
		},
		{
			"low authenticity confidence",
			types.SignalBundle{ContentType: types.ContentImage, ManipulationKnown: true, ManipulationConfidence: 0.3},
			types.RiskOrange,
		},
		{
			"unknown detector stays neutral",
			types.SignalBundle{ContentType: types.ContentImage, ManipulationConfidence: 0.5},
			types.RiskYellow,
		},
		{
			"no claims no signals",
			types.SignalBundle{ContentType: types.ContentText},
			types.RiskYellow,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(&c.bundle); got != c.want {
				t.Fatalf("Classify = %v; want %v", got, c.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	b := &types.SignalBundle{
		ContentType:            types.ContentAudio,
		Claims:                 claimSet(1, 1, 1, 0.6),
		Manipulated:            true,
		ManipulationConfidence: 0.55,
		ManipulationKnown:      true,
	}
	first := Classify(b)
	for i := 0; i < 100; i++ {
		if got := Classify(b); got != first {
			t.Fatalf("classification flapped: %v then %v", first, got)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	order := []types.RiskLabel{types.RiskGreen, types.RiskYellow, types.RiskOrange, types.RiskRed}
	for i := 1; i < len(order); i++ {
		if order[i].Severity() <= order[i-1].Severity() {
			t.Fatalf("severity not strictly increasing at %v", order[i])
		}
	}
}
