package collaborators

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"trustlens/parsing"
	"trustlens/types"
)

const factCheckPreamble = `You are a careful fact-checking assistant. Assess the single claim you are given against your knowledge and respond with a JSON object only, no other text:
{"verdict": "VERIFIED|DISPUTED|UNVERIFIED", "confidence": 0.0-1.0, "explanation": "one or two sentences"}
VERIFIED means the claim is well supported, DISPUTED means it is contradicted by reliable information, UNVERIFIED means you cannot tell either way.`

const presentationPreamble = `You write short, neutral trust-report copy for end users. Respond with a JSON object only, no other text:
{"oneLineDescription": "...", "summary": "...", "educationalInsight": "...", "sources": [{"url": "...", "title": "...", "credibility": 0.0-1.0}]}
Keep oneLineDescription under 160 characters. educationalInsight should teach the reader one transferable media-literacy lesson.`

// CohereConfig holds configuration for the Cohere-backed collaborators.
type CohereConfig struct {
	APIKey string
	// Model defaults to command-r.
	Model string
}

// Cohere implements FactChecker, PresentationGenerator and WebGrounder on top
// of the Cohere chat API.
type Cohere struct {
	client *cohereclient.Client
	model  string
}

// NewCohere creates a Cohere-backed collaborator set member. Reads
// COHERE_API_KEY when cfg.APIKey is empty.
func NewCohere(cfg CohereConfig) (*Cohere, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("COHERE_API_KEY")
	}
	if key == "" {
		return nil, errors.New("cohere api key not configured")
	}

	model := cfg.Model
	if model == "" {
		model = "command-r"
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors seen against the API.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}

	client := cohereclient.NewClient(
		cohereclient.WithToken(key),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Cohere{client: client, model: model}, nil
}

func (c *Cohere) chat(ctx context.Context, preamble, message string, connectors []*cohere.ChatConnector) (*cohere.NonStreamedChatResponse, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:    message,
		Model:      &c.model,
		Preamble:   &preamble,
		Connectors: connectors,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat: %w", err)
	}
	if resp == nil {
		return nil, errors.New("cohere chat returned empty response")
	}
	return resp, nil
}

// FactCheck asks the model for a verdict on one claim. The reply goes through
// the parsing fallback chain, so a sloppy reply still yields a usable result;
// only transport-level failure surfaces as an error.
func (c *Cohere) FactCheck(ctx context.Context, claim string) (FactCheckResult, error) {
	resp, err := c.chat(ctx, factCheckPreamble, "Claim: "+claim, nil)
	if err != nil {
		return FactCheckResult{}, err
	}

	verdict, _ := parsing.ParseVerdict(resp.Text)
	return FactCheckResult{
		Verdict:     verdict.Verdict,
		Confidence:  verdict.Confidence,
		Explanation: verdict.Explanation,
	}, nil
}

// GeneratePresentation returns the model's raw reply; the assembler owns
// parsing and the local-synthesis fallback.
func (c *Cohere) GeneratePresentation(ctx context.Context, bundle *types.SignalBundle, candidates []types.Source) (string, error) {
	verified, disputed, unverified := bundle.VerdictCounts()

	var b strings.Builder
	fmt.Fprintf(&b, "Content type: %s\n", bundle.ContentType)
	fmt.Fprintf(&b, "Claims: %d verified, %d disputed, %d unverified\n", verified, disputed, unverified)
	for _, claim := range bundle.Claims {
		fmt.Fprintf(&b, "- [%s %.2f] %s\n", claim.Verdict, claim.Confidence, claim.Text)
	}
	if bundle.ManipulationKnown {
		fmt.Fprintf(&b, "Manipulation detected: %t (confidence %.2f)\n", bundle.Manipulated, bundle.ManipulationConfidence)
	} else {
		b.WriteString("Manipulation check unavailable\n")
	}
	if len(bundle.EventLabels) > 0 {
		fmt.Fprintf(&b, "Visual labels: %s\n", strings.Join(bundle.EventLabels, ", "))
	}
	if len(candidates) > 0 {
		cb, _ := json.Marshal(candidates)
		fmt.Fprintf(&b, "Candidate sources: %s\n", cb)
	}

	resp, err := c.chat(ctx, presentationPreamble, b.String(), nil)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// CohereGrounder implements WebGrounder with the chat web-search connector.
type CohereGrounder struct {
	cohere *Cohere
}

// NewCohereGrounder wraps an existing Cohere client for grounding calls.
func NewCohereGrounder(c *Cohere) *CohereGrounder {
	return &CohereGrounder{cohere: c}
}

// WebGround runs the query through the web-search connector and maps the
// returned documents to grounding hits, ranked in response order.
func (g *CohereGrounder) WebGround(ctx context.Context, query string) ([]types.GroundingHit, error) {
	resp, err := g.cohere.chat(ctx, "", query, []*cohere.ChatConnector{{Id: "web-search"}})
	if err != nil {
		return nil, err
	}

	hits := make([]types.GroundingHit, 0, len(resp.Documents))
	for i, doc := range resp.Documents {
		url := doc["url"]
		if url == "" {
			continue
		}
		relevance := 1.0 - float64(i)*0.1
		if relevance < 0.1 {
			relevance = 0.1
		}
		hits = append(hits, types.GroundingHit{
			URL:       url,
			Title:     doc["title"],
			Snippet:   doc["snippet"],
			Relevance: relevance,
		})
	}
	return hits, nil
}
