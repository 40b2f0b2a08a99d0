package parsing

import (
	"errors"
	"strings"

	"trustlens/types"
)

// PresentationResult is the declared shape for the presentation-generation
// collaborator's output.
// Field tags mirror the camelCase keys the generator is prompted for.
type PresentationResult struct {
	OneLineDescription string         `json:"oneLineDescription"`
	Summary            string         `json:"summary"`
	EducationalInsight string         `json:"educationalInsight"`
	Sources            []types.Source `json:"sources,omitempty"`
}

func (p *PresentationResult) validate() error {
	if strings.TrimSpace(p.OneLineDescription) == "" && strings.TrimSpace(p.Summary) == "" {
		return errors.New("presentation missing both description and summary")
	}
	cleaned := p.Sources[:0]
	for _, s := range p.Sources {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		s.Credibility = clamp01(s.Credibility)
		cleaned = append(cleaned, s)
	}
	p.Sources = cleaned
	return nil
}

// ParsePresentation recovers a PresentationResult from free-form generator
// output. The presentation schema declares no keyword heuristic; anything the
// repair chain cannot save falls through to the caller-declared default.
func ParsePresentation(raw string, def PresentationResult) (PresentationResult, Stage) {
	var out PresentationResult
	if stage, ok := decode(raw, &out, out.validate); ok {
		out.OneLineDescription = strings.TrimSpace(out.OneLineDescription)
		out.Summary = strings.TrimSpace(out.Summary)
		out.EducationalInsight = strings.TrimSpace(out.EducationalInsight)
		return out, stage
	}

	logStage("presentation", StageDefault)
	return def, StageDefault
}
