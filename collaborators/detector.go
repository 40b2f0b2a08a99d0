package collaborators

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"trustlens/config"
	"trustlens/types"
)

// DetectorClient talks to the external manipulation/deepfake detection
// service over HTTP.
type DetectorClient struct {
	baseURL string
	client  *http.Client
}

// NewDetectorClient creates a detector client. Uses DETECTOR_SERVICE_URL,
// falling back to the Docker internal DNS name for the service.
func NewDetectorClient(baseURL string) *DetectorClient {
	if baseURL == "" {
		baseURL = getEnvOrDefault("DETECTOR_SERVICE_URL", "http://detector-service:8600")
	}
	return &DetectorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: config.CollaboratorTimeout},
	}
}

type detectRequest struct {
	ContentType string `json:"content_type"`
	MediaB64    string `json:"media_b64"`
}

type detectResponse struct {
	IsManipulated bool    `json:"is_manipulated"`
	Confidence    float64 `json:"confidence"`
	Error         string  `json:"error,omitempty"`
}

// DetectManipulation posts the media for analysis. Callers convert any error
// to the neutral {false, 0.5} default flagged as unknown.
func (d *DetectorClient) DetectManipulation(ctx context.Context, media []byte, contentType types.ContentType) (ManipulationResult, error) {
	body, err := json.Marshal(detectRequest{
		ContentType: string(contentType),
		MediaB64:    base64.StdEncoding.EncodeToString(media),
	})
	if err != nil {
		return ManipulationResult{}, fmt.Errorf("marshal detect request: %w", err)
	}

	url := fmt.Sprintf("%s/detect", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return ManipulationResult{}, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return ManipulationResult{}, fmt.Errorf("detector service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return ManipulationResult{}, fmt.Errorf("detector service returned %d: %s", resp.StatusCode, string(raw))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ManipulationResult{}, fmt.Errorf("decode detect response: %w", err)
	}
	if out.Error != "" {
		return ManipulationResult{}, fmt.Errorf("detector service: %s", out.Error)
	}

	conf := out.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return ManipulationResult{IsManipulated: out.IsManipulated, Confidence: conf}, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
