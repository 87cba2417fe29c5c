// Package gemini calls the Gemini generateContent REST endpoint and
// normalizes upstream failures into the error taxonomy the orchestrator
// acts on.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production Gemini REST endpoint prefix.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel mirrors the model the hosted app was built around.
	DefaultModel = "gemini-2.5-flash"

	defaultTimeout = 60 * time.Second
)

// Config describes how to reach the Gemini API.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client is a thin generateContent wrapper. One call per Summarize, no
// automatic retries; retrying is the user's decision.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient builds a client, filling unset config fields with defaults.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize performs one blocking generateContent call and returns the
// model's response text unmodified. Failures pass through Classify, so a
// resource-exhaustion response comes back as a *QuotaError.
func (c *Client) Summarize(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", Classify(fmt.Sprintf("calling gemini: %v", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", Classify(fmt.Sprintf("gemini returned status %d: %s", res.StatusCode, body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
