// Package engine wires signal collection, scoring, and presentation into the
// single analysis entry point.
package engine

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"trustlens/collaborators"
	"trustlens/presentation"
	"trustlens/scoring"
	"trustlens/signals"
	"trustlens/sources"
	"trustlens/types"
)

// Engine runs the full trust-assessment pipeline for one content item.
type Engine struct {
	collector *signals.Collector
	assembler *presentation.Assembler
	cache     *collaborators.VerdictCache
	pool      *sources.Pool
}

// New creates an engine over an already-built collector and assembler.
func New(collector *signals.Collector, assembler *presentation.Assembler) *Engine {
	return &Engine{collector: collector, assembler: assembler}
}

// NewFromEnv builds the production engine: every collaborator that can be
// configured from the environment is wired in, and every one that cannot is
// left nil and degrades at collection time.
func NewFromEnv(ctx context.Context) *Engine {
	var set collaborators.Set

	if co, err := collaborators.NewCohere(collaborators.CohereConfig{Model: os.Getenv("COHERE_MODEL")}); err != nil {
		log.Printf("Warning: Cohere not configured, fact checking and presentation degraded: %v", err)
	} else {
		set.FactChecker = co
		set.Presenter = co
		set.Grounder = collaborators.NewCohereGrounder(co)
	}

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GOOGLE_API_KEY not set, transcription and vision degraded")
	} else {
		if speech, err := collaborators.NewGoogleSpeech(ctx, apiKey); err != nil {
			log.Printf("Warning: speech client unavailable: %v", err)
		} else {
			set.Transcriber = speech
		}
		if vision, err := collaborators.NewGoogleVision(ctx, apiKey); err != nil {
			log.Printf("Warning: vision client unavailable: %v", err)
		} else {
			set.OCR = vision
			set.Labeler = vision
		}
		if cx := os.Getenv("GOOGLE_SEARCH_CX"); cx != "" {
			if search, err := collaborators.NewGoogleSearch(ctx, apiKey, cx); err != nil {
				log.Printf("Warning: custom search unavailable: %v", err)
			} else {
				// Prefer programmable search for grounding when configured.
				set.Grounder = search
			}
		}
	}

	set.Detector = collaborators.NewDetectorClient("")

	cache := collaborators.NewVerdictCache()
	if cache != nil {
		log.Println("✓ Verdict cache connected")
	}

	pool := sources.NewPool()
	schedule := os.Getenv("SOURCE_REFRESH_SCHEDULE")
	if schedule == "" {
		schedule = "0 */6 * * *"
	}
	if err := pool.StartCron(schedule); err != nil {
		log.Printf("Warning: source pool refresh not scheduled: %v", err)
	}

	return &Engine{
		collector: signals.NewCollector(set, cache),
		assembler: presentation.NewAssembler(set.Presenter, pool),
		cache:     cache,
		pool:      pool,
	}
}

// Analyze runs the full pipeline and always returns a usable result. Any
// failure to obtain the primary signal maps to the predefined worst-case
// result; everything milder has already been absorbed as a degraded signal.
func (e *Engine) Analyze(ctx context.Context, content types.ContentVariant) types.UnifiedResult {
	start := time.Now()

	if !content.Supported() {
		log.Printf("Warning: unsupported content type %q", content.Type)
		return presentation.WorstCase(uuid.New().String(), content.Type, "unsupported content type")
	}

	bundle, err := e.collector.Collect(ctx, content)
	if err != nil {
		log.Printf("Warning: collection failed for %s content: %v", content.Type, err)
		return presentation.WorstCase(uuid.New().String(), content.Type, err.Error())
	}

	scores := scoring.Score(bundle)
	label := scoring.Classify(bundle)
	pres := e.assembler.Assemble(ctx, bundle)

	result := types.UnifiedResult{
		RequestID:          bundle.RequestID,
		ContentType:        bundle.ContentType,
		Label:              label,
		OneLineDescription: pres.OneLineDescription,
		Summary:            pres.Summary,
		EducationalInsight: pres.EducationalInsight,
		Sources:            pres.Sources,
		Scores:             scores,
		Claims:             bundle.Claims,
	}

	log.Printf("✓ Analyzed %s content %s: %s (%d/%d/%d) in %v",
		result.ContentType, result.RequestID, result.Label,
		scores.SourceIntegrity, scores.ContentAuthenticity, scores.TrustExplainability,
		time.Since(start).Round(time.Millisecond))
	return result
}

// Close releases long-lived resources.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Stop()
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			log.Printf("Warning: failed to close verdict cache: %v", err)
		}
	}
}
