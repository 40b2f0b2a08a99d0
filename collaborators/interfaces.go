// Package collaborators defines the external analysis backends the engine
// depends on, plus real adapters for each. Every adapter is injected as an
// interface value; nothing in here is a package-level singleton. Failures are
// normalized to degraded defaults by the callers at this boundary, never
// propagated as exceptions through the core.
package collaborators

import (
	"context"

	"trustlens/types"
)

// FactCheckResult is the structured outcome of checking one claim.
type FactCheckResult struct {
	Verdict     types.Verdict `json:"verdict"`
	Confidence  float64       `json:"confidence"`
	Explanation string        `json:"explanation,omitempty"`
}

// ManipulationResult is the structured outcome of a manipulation/deepfake check.
type ManipulationResult struct {
	IsManipulated bool    `json:"is_manipulated"`
	Confidence    float64 `json:"confidence"`
}

// Transcriber converts audio to text. May return "" without error when the
// backend heard nothing usable.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// TextExtractor performs OCR on an image. May return "" without error.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Labeler describes visual content with a short list of labels.
type Labeler interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

// ManipulationDetector assesses whether media has been synthesized or edited.
type ManipulationDetector interface {
	DetectManipulation(ctx context.Context, media []byte, contentType types.ContentType) (ManipulationResult, error)
}

// FactChecker resolves a single claim to a verdict.
type FactChecker interface {
	FactCheck(ctx context.Context, claim string) (FactCheckResult, error)
}

// WebGrounder searches the web for material related to a query.
type WebGrounder interface {
	WebGround(ctx context.Context, query string) ([]types.GroundingHit, error)
}

// PresentationGenerator produces the user-facing copy for a finished bundle.
// The return value is free text that is expected, but not trusted, to be
// JSON; callers run it through the parsing fallback chain.
type PresentationGenerator interface {
	GeneratePresentation(ctx context.Context, bundle *types.SignalBundle, candidates []types.Source) (string, error)
}

// Set groups the backends one collector instance works with. Any field may be
// nil; a nil backend degrades exactly like a failing one.
type Set struct {
	Transcriber Transcriber
	OCR         TextExtractor
	Labeler     Labeler
	Detector    ManipulationDetector
	FactChecker FactChecker
	Grounder    WebGrounder
	Presenter   PresentationGenerator
}
