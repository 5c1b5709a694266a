// Package translation adapts translation providers to ports.TranslationClient.
package translation

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"NewsSimplifier/internal/ports"
)

// ErrDisabled is returned by Disabled for every call.
var ErrDisabled = errors.New("translation provider not configured")

// GoogleClient calls the Cloud Translation v2 API.
type GoogleClient struct {
	svc *translate.Service
}

var _ ports.TranslationClient = (*GoogleClient)(nil)

// NewGoogleClient builds a client authenticated by API key; extra options override transport or endpoint.
func NewGoogleClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleClient, error) {
	if apiKey == "" && len(opts) == 0 {
		return nil, fmt.Errorf("API key is required")
	}
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &GoogleClient{svc: svc}, nil
}

// Translate sends one chunk as plain text in a POST body; chunks are too long for query strings.
func (c *GoogleClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	req := &translate.TranslateTextRequest{
		Q:      []string{text},
		Target: target,
		Source: source,
		Format: "text",
	}
	resp, err := c.svc.Translations.Translate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("translate to %s: empty response", target)
	}
	return resp.Translations[0].TranslatedText, nil
}

// Disabled rejects every request; languages end up unavailable.
type Disabled struct{}

var _ ports.TranslationClient = Disabled{}

func (Disabled) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrDisabled
}
