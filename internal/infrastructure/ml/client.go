// Package ml talks to an optional remote readability and fact-check service.
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/ports"
)

// Client implements the quality loop collaborators over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var (
	_ ports.ReadabilityScorer = (*Client)(nil)
	_ ports.FactVerifier      = (*Client)(nil)
)

// NewClient creates a reusable HTTP client; a nil httpClient gets a 15s timeout.
func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     httpClient,
	}
}

// Score asks the service for a grade level.
func (c *Client) Score(ctx context.Context, text string) (float64, error) {
	var resp struct {
		Grade *float64 `json:"grade"`
	}
	if err := c.post(ctx, "/readability", map[string]any{"text": text}, &resp); err != nil {
		return 0, fmt.Errorf("score readability: %w", err)
	}
	if resp.Grade == nil {
		return 0, fmt.Errorf("score readability: missing grade")
	}
	return *resp.Grade, nil
}

// Verify asks the service to compare candidate against original.
func (c *Client) Verify(ctx context.Context, original, candidate string) (domain.FactVerification, error) {
	payload := map[string]any{
		"original":   original,
		"simplified": candidate,
	}

	var resp struct {
		ConfidencePct   float64 `json:"confidence_pct"`
		MatchedEntities int     `json:"matched_entities_count"`
		FailureReason   *string `json:"failure_reason"`
		Passed          bool    `json:"passed"`
	}
	if err := c.post(ctx, "/verify", payload, &resp); err != nil {
		return domain.FactVerification{}, fmt.Errorf("verify facts: %w", err)
	}

	return domain.FactVerification{
		ConfidencePct:   resp.ConfidencePct,
		MatchedEntities: resp.MatchedEntities,
		FailureReason:   resp.FailureReason,
		Passed:          resp.Passed,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
