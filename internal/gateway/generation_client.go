// Package gateway holds clients for external collaborators. The generation
// webhook is an opaque third party: one HTTP POST with a bounded timeout,
// returning an image URL or failing.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// generationRequest is the JSON body sent to the generation webhook.
type generationRequest struct {
	Prompt string `json:"prompt"`
}

// generationResponse is the JSON body expected back from the webhook.
type generationResponse struct {
	ImageURL string `json:"imageUrl"`
}

// GenerationClient calls the external image-generation webhook. It satisfies
// core.GenerationGateway.
type GenerationClient struct {
	webhookURL string
	httpClient *http.Client
	timeout    time.Duration
}

// NewGenerationClient creates a new GenerationClient with the given webhook
// URL and per-call timeout.
func NewGenerationClient(webhookURL string, timeout time.Duration) *GenerationClient {
	return &GenerationClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Generate posts the prompt to the webhook and returns the generated image
// URL. It fails fast on timeout rather than hang: both the http.Client
// timeout and the request context are bounded.
func (c *GenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.webhookURL == "" {
		return "", errors.New("generation webhook URL is not configured")
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generationRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the log line without trusting its size.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation webhook returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var genResp generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if genResp.ImageURL == "" {
		return "", errors.New("generation response did not contain an image URL")
	}
	return genResp.ImageURL, nil
}
