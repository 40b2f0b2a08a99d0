package collaborators

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"
	vision "google.golang.org/api/vision/v1"

	"trustlens/config"
	"trustlens/types"
)

// GoogleSpeech implements Transcriber using the Cloud Speech-to-Text API.
type GoogleSpeech struct {
	service  *speech.Service
	language string
}

// NewGoogleSpeech creates a transcriber. Reads GOOGLE_API_KEY when apiKey is
// empty; without a key the default credential chain applies.
func NewGoogleSpeech(ctx context.Context, apiKey string) (*GoogleSpeech, error) {
	svc, err := speech.NewService(ctx, clientOptions(apiKey)...)
	if err != nil {
		return nil, fmt.Errorf("init speech service: %w", err)
	}
	return &GoogleSpeech{service: svc, language: "en-US"}, nil
}

// Transcribe sends inline audio for synchronous recognition and joins all
// result alternatives into one transcript.
func (g *GoogleSpeech) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			LanguageCode:               g.language,
			Encoding:                   encodingForMime(mimeType),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

	resp, err := g.service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

func encodingForMime(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "flac"):
		return "FLAC"
	case strings.Contains(mimeType, "wav"), strings.Contains(mimeType, "linear16"):
		return "LINEAR16"
	case strings.Contains(mimeType, "ogg"), strings.Contains(mimeType, "opus"):
		return "OGG_OPUS"
	default:
		// MP3 covers the ffmpeg-extracted track from the video arm.
		return "MP3"
	}
}

// GoogleVision implements TextExtractor and Labeler using the Cloud Vision API.
type GoogleVision struct {
	service *vision.Service
}

// NewGoogleVision creates a vision client for OCR and label detection.
func NewGoogleVision(ctx context.Context, apiKey string) (*GoogleVision, error) {
	svc, err := vision.NewService(ctx, clientOptions(apiKey)...)
	if err != nil {
		return nil, fmt.Errorf("init vision service: %w", err)
	}
	return &GoogleVision{service: svc}, nil
}

func (g *GoogleVision) annotate(ctx context.Context, image []byte, feature string, maxResults int64) (*vision.AnnotateImageResponse, error) {
	batch := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: feature, MaxResults: maxResults}},
		}},
	}

	resp, err := g.service.Images.Annotate(batch).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, errors.New("vision annotate returned no responses")
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision annotate: %s", resp.Responses[0].Error.Message)
	}
	return resp.Responses[0], nil
}

// ExtractText runs OCR over the image; "" when nothing is legible.
func (g *GoogleVision) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}
	resp, err := g.annotate(ctx, image, "TEXT_DETECTION", 0)
	if err != nil {
		return "", err
	}
	if resp.FullTextAnnotation == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.FullTextAnnotation.Text), nil
}

// DetectLabels returns the top label descriptions for the image.
func (g *GoogleVision) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, nil
	}
	resp, err := g.annotate(ctx, image, "LABEL_DETECTION", 10)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(resp.LabelAnnotations))
	for _, ann := range resp.LabelAnnotations {
		labels = append(labels, ann.Description)
	}
	return labels, nil
}

// GoogleSearch implements WebGrounder using the Programmable Search API.
type GoogleSearch struct {
	service *customsearch.Service
	cx      string
}

// NewGoogleSearch creates a web grounder. cx is the programmable search
// engine id; reads GOOGLE_SEARCH_CX when empty.
func NewGoogleSearch(ctx context.Context, apiKey, cx string) (*GoogleSearch, error) {
	if cx == "" {
		cx = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if cx == "" {
		return nil, errors.New("google search engine id not configured")
	}
	svc, err := customsearch.NewService(ctx, clientOptions(apiKey)...)
	if err != nil {
		return nil, fmt.Errorf("init customsearch service: %w", err)
	}
	return &GoogleSearch{service: svc, cx: cx}, nil
}

// WebGround runs one query and maps results to grounding hits in rank order.
func (g *GoogleSearch) WebGround(ctx context.Context, query string) ([]types.GroundingHit, error) {
	resp, err := g.service.Cse.List().Cx(g.cx).Q(query).Num(config.MaxHitsPerQuery).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("customsearch list: %w", err)
	}

	hits := make([]types.GroundingHit, 0, len(resp.Items))
	for i, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		relevance := 1.0 - float64(i)*0.15
		if relevance < 0.1 {
			relevance = 0.1
		}
		hits = append(hits, types.GroundingHit{
			URL:       item.Link,
			Title:     item.Title,
			Snippet:   item.Snippet,
			Relevance: relevance,
		})
	}
	return hits, nil
}

func clientOptions(apiKey string) []option.ClientOption {
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey != "" {
		return []option.ClientOption{option.WithAPIKey(apiKey)}
	}
	return nil
}
