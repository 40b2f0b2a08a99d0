package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trustlens/types"
)

// APIClient is a thin HTTP client for the trust analysis API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new analysis API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type analyzeBody struct {
	ContentType string `json:"content_type"`
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Analyze submits text or a URL for analysis and returns the unified result
func (c *APIClient) Analyze(contentType, input string) (*types.UnifiedResult, error) {
	body := analyzeBody{ContentType: contentType}
	if contentType == "url" {
		body.URL = input
	} else {
		body.Text = input
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/analyze", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to reach analysis API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	var result types.UnifiedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Health checks whether the API is reachable
func (c *APIClient) Health() error {
	resp, err := c.client.Get(c.baseURL + "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}
