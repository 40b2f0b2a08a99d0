package types

// TrustScores are the three derived sub-scores, each an integer in [0,100].
// They are computed by the score calculator and never set directly.
type TrustScores struct {
	SourceIntegrity     int `json:"source_integrity"`
	ContentAuthenticity int `json:"content_authenticity"`
	TrustExplainability int `json:"trust_explainability"`
}

// RiskLabel is the four-level classification of overall content risk.
type RiskLabel string

const (
	RiskGreen  RiskLabel = "GREEN"
	RiskYellow RiskLabel = "YELLOW"
	RiskOrange RiskLabel = "ORANGE"
	RiskRed    RiskLabel = "RED"
)

// Severity orders labels for tie-breaks: RED > ORANGE > YELLOW > GREEN.
func (l RiskLabel) Severity() int {
	switch l {
	case RiskRed:
		return 3
	case RiskOrange:
		return 2
	case RiskYellow:
		return 1
	default:
		return 0
	}
}

// UnifiedResult is the sole externally visible artifact of an analysis,
// constructed once per request and never mutated afterwards.
type UnifiedResult struct {
	RequestID          string      `json:"request_id"`
	ContentType        ContentType `json:"content_type"`
	Label              RiskLabel   `json:"label"`
	OneLineDescription string      `json:"one_line_description"`
	Summary            string      `json:"summary"`
	EducationalInsight string      `json:"educational_insight"`
	Sources            []Source    `json:"sources"`
	Scores             TrustScores `json:"scores"`
	Claims             []Claim     `json:"claims,omitempty"`
}
