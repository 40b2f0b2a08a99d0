package config

import "time"

// Claim Pipeline Constants
const (
	// MaxClaims caps extraction and verification per request for latency and cost
	MaxClaims = 5

	// MinClaimLength is the minimum sentence length considered fact-bearing
	MinClaimLength = 20

	// MinInputLength is the minimum input length that yields any claims
	MinInputLength = 10

	// DefaultFactCheckConfidence is the documented low-confidence default
	// assigned when fact checking fails or degrades
	DefaultFactCheckConfidence = 0.3
)

// Manipulation Detection Constants
const (
	// NeutralManipulationConfidence is the "unknown, not safe" default when
	// the detector is unavailable
	NeutralManipulationConfidence = 0.5

	// HighManipulationThreshold triggers the RED rule
	HighManipulationThreshold = 0.7

	// ModerateManipulationThreshold triggers the ORANGE rule
	ModerateManipulationThreshold = 0.5
)

// Presentation Constants
const (
	// MaxSources caps sources in a unified result
	MaxSources = 8

	// MinSources is the floor padded from the fallback pool
	MinSources = 3

	// MaxOneLineLength bounds the one-line description, ellipsis included
	MaxOneLineLength = 160

	// MaxExplanationLength bounds free-text explanations synthesized by the
	// parser's heuristic fallback
	MaxExplanationLength = 240
)

// Grounding Constants
const (
	// MaxGroundingQueries bounds the derived web-grounding queries per request
	MaxGroundingQueries = 3

	// MaxHitsPerQuery bounds results accepted from one grounding query
	MaxHitsPerQuery = 5
)

// Collaborator Call Constants
const (
	// CollaboratorTimeout is the per-call timeout for external backends
	CollaboratorTimeout = 45 * time.Second

	// URLFetchTimeout bounds readability extraction for the url arm
	URLFetchTimeout = 30 * time.Second

	// VerdictCacheTTL is how long fact-check verdicts stay cached
	VerdictCacheTTL = 24 * time.Hour
)

// Media Constants
const (
	// TempDir is the directory for intermediate ffmpeg artifacts
	TempDir = "/tmp"

	// KeyFrameOffset is where in the clip the representative frame is taken
	KeyFrameOffset = "00:00:01"
)
