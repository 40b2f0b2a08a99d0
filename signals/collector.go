// Package signals collects the raw analysis signals for one request. Each
// content-type arm fans its collaborator calls out concurrently and joins
// with wait-all; an individual call failing degrades that one signal to its
// neutral default instead of aborting the bundle. The bundle is returned only
// after every task has settled, so scoring never observes a partial bundle.
package signals

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"trustlens/claims"
	"trustlens/collaborators"
	"trustlens/config"
	"trustlens/types"
)

// ErrPrimarySignalFailed means the arm's primary modality produced nothing
// to analyze (e.g. transcription entirely failing on audio). The caller maps
// this to the predefined worst-case result rather than an error.
var ErrPrimarySignalFailed = errors.New("primary signal unavailable")

// ErrUnsupportedVariant means the content tag is not a known modality.
var ErrUnsupportedVariant = errors.New("unsupported content variant")

// Collector owns the per-request fan-out over the collaborator set.
type Collector struct {
	backends  collaborators.Set
	verifier  *claims.Verifier
	media     MediaTools
	fetchPage FetchPage
}

// NewCollector creates a collector over the given backends. The verifier is
// built from the set's fact checker; cache may be nil.
func NewCollector(backends collaborators.Set, cache *collaborators.VerdictCache) *Collector {
	return &Collector{
		backends: backends,
		verifier: claims.NewVerifier(backends.FactChecker, cache),
		media:    FFmpegTools{},
	}
}

// WithMediaTools swaps the ffmpeg-backed media helpers, used by tests.
func (c *Collector) WithMediaTools(tools MediaTools) *Collector {
	c.media = tools
	return c
}

// degradedSet records which signals fell back to a neutral default. Tasks
// across the fan-out report into it concurrently.
type degradedSet struct {
	mu      sync.Mutex
	signals []string
}

func (d *degradedSet) add(signal string) {
	d.mu.Lock()
	d.signals = append(d.signals, signal)
	d.mu.Unlock()
}

func (d *degradedSet) list() []string {
	sort.Strings(d.signals)
	return d.signals
}

// Collect builds the signal bundle for one content variant. The only errors
// are an unsupported variant tag and primary-modality failure; everything
// else degrades in place and is listed in bundle.Degraded.
func (c *Collector) Collect(ctx context.Context, content types.ContentVariant) (*types.SignalBundle, error) {
	bundle := &types.SignalBundle{
		RequestID:   uuid.New().String(),
		ContentType: content.Type,
		// Manipulation starts at the unknown-neutral stance until a
		// detector task overwrites it.
		ManipulationConfidence: config.NeutralManipulationConfidence,
	}
	deg := &degradedSet{}

	var err error
	switch content.Type {
	case types.ContentText:
		c.collectFromText(ctx, bundle, deg, content.Text)
	case types.ContentURL:
		err = c.collectURL(ctx, bundle, deg, content.URL)
	case types.ContentImage:
		err = c.collectImage(ctx, bundle, deg, content.Media)
	case types.ContentVideo:
		err = c.collectVideo(ctx, bundle, deg, content)
	case types.ContentAudio:
		err = c.collectAudio(ctx, bundle, deg, content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariant, content.Type)
	}
	if err != nil {
		return nil, err
	}

	bundle.Degraded = deg.list()
	return bundle, nil
}

// collectFromText runs the text-derived tasks, claim verification and web
// grounding, concurrently. Media arms call this from inside their transcript
// task once the text exists. Every task writes only its own bundle fields,
// so the write-once rule holds.
func (c *Collector) collectFromText(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, text string) {
	claimTexts := claims.Extract(text)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		bundle.Claims = c.verifier.VerifyAll(ctx, claimTexts)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		hits, failed := c.ground(ctx, groundingQueries(text, claimTexts))
		bundle.SourceCandidates = hits
		if failed {
			deg.add("web_grounding")
		}
	}()

	wg.Wait()
}

// ground fans out the derived queries concurrently and merges hits,
// de-duplicating on URL in query order. The second return is true when every
// query failed or no grounder is configured.
func (c *Collector) ground(ctx context.Context, queries []string) ([]types.GroundingHit, bool) {
	if c.backends.Grounder == nil || len(queries) == 0 {
		return nil, true
	}

	perQuery := make([][]types.GroundingHit, len(queries))
	failures := make([]bool, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			hits, err := c.backends.Grounder.WebGround(ctx, q)
			if err != nil {
				log.Printf("Warning: web grounding failed for %.60q: %v", q, err)
				failures[i] = true
				return
			}
			if len(hits) > config.MaxHitsPerQuery {
				hits = hits[:config.MaxHitsPerQuery]
			}
			perQuery[i] = hits
		}(i, q)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var merged []types.GroundingHit
	allFailed := true
	for i, hits := range perQuery {
		if !failures[i] {
			allFailed = false
		}
		for _, h := range hits {
			if seen[h.URL] {
				continue
			}
			seen[h.URL] = true
			merged = append(merged, h)
		}
	}
	return merged, allFailed
}

// groundingQueries derives up to MaxGroundingQueries search queries: the
// leading claims first, then a lead-text query when room remains.
func groundingQueries(text string, claimTexts []string) []string {
	var queries []string
	for _, claim := range claimTexts {
		if len(queries) == config.MaxGroundingQueries {
			return queries
		}
		queries = append(queries, claim)
	}

	lead := strings.Join(strings.Fields(text), " ")
	if runes := []rune(lead); len(runes) > 120 {
		lead = string(runes[:120])
	}
	if lead != "" && len(queries) < config.MaxGroundingQueries {
		queries = append(queries, lead)
	}
	return queries
}

// detectManipulation runs the detector and writes the manipulation fields.
// Failure keeps the unknown-neutral default: explicitly "unknown", not safe.
func (c *Collector) detectManipulation(ctx context.Context, bundle *types.SignalBundle, deg *degradedSet, media []byte) {
	if c.backends.Detector == nil {
		deg.add("manipulation_check")
		return
	}
	result, err := c.backends.Detector.DetectManipulation(ctx, media, bundle.ContentType)
	if err != nil {
		log.Printf("Warning: manipulation check failed: %v", err)
		deg.add("manipulation_check")
		return
	}
	bundle.Manipulated = result.IsManipulated
	bundle.ManipulationConfidence = result.Confidence
	bundle.ManipulationKnown = true
}
