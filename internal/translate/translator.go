// Package translate fans a finished article out into per-language variants.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
)

// ErrLanguageAbandoned marks a language that produced no payload.
var ErrLanguageAbandoned = errors.New("translation abandoned")

// Config tunes chunking and retries.
type Config struct {
	SourceLanguage string
	ChunkSize      int
	MaxAttempts    int
	Backoff        time.Duration
	CallTimeout    time.Duration
	ChunkPause     time.Duration
}

func (c Config) withDefaults() Config {
	if c.SourceLanguage == "" {
		c.SourceLanguage = "en"
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 4800
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 15 * time.Second
	}
	return c
}

// Content is the translatable part of a record.
type Content struct {
	Headline       string
	SimplifiedText string
	OriginalText   string
	Genre          string
	Quizzes        []domain.Quiz
}

// Translator produces one payload per target language.
type Translator struct {
	client ports.TranslationClient
	cfg    Config
	logger *logging.Logger
}

// New builds a translator around a chunk-level client.
func New(client ports.TranslationClient, cfg Config, log *logging.Logger) *Translator {
	return &Translator{client: client, cfg: cfg.withDefaults(), logger: log}
}

// TranslateAll runs every language concurrently. A failed language yields
// IsAvailable=false and never affects the others.
func (t *Translator) TranslateAll(ctx context.Context, content Content, languages []string) map[string]domain.TranslationPayload {
	results := make([]domain.TranslationPayload, len(languages))

	var g errgroup.Group
	for i, lang := range languages {
		g.Go(func() error {
			payload, err := t.TranslateLanguage(ctx, content, lang)
			if err != nil {
				t.logger.Warn("translation unavailable", "lang", lang, "error", err)
			}
			results[i] = payload
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]domain.TranslationPayload, len(languages))
	for i, lang := range languages {
		out[lang] = results[i]
	}
	return out
}

// TranslateLanguage returns a complete payload or an unavailable one with ErrLanguageAbandoned.
func (t *Translator) TranslateLanguage(ctx context.Context, content Content, lang string) (domain.TranslationPayload, error) {
	texts := flatten(content)
	translated := make([]string, len(texts))
	for i, text := range texts {
		out, err := t.translateText(ctx, text, lang)
		if err != nil {
			return domain.TranslationPayload{IsAvailable: false}, fmt.Errorf("%w: %s: %w", ErrLanguageAbandoned, lang, err)
		}
		translated[i] = out
	}

	return domain.TranslationPayload{
		Headline:       translated[0],
		SimplifiedText: translated[1],
		OriginalText:   translated[2],
		Genre:          translated[3],
		Quizzes:        unflattenQuizzes(content.Quizzes, translated[4:]),
		IsAvailable:    true,
	}, nil
}

// flatten lists strings as headline, simplified, original, genre, then each
// question followed by its answers.
func flatten(c Content) []string {
	texts := []string{c.Headline, c.SimplifiedText, c.OriginalText, c.Genre}
	for _, q := range c.Quizzes {
		texts = append(texts, q.QuestionText)
		for _, a := range q.Answers {
			texts = append(texts, a.Text)
		}
	}
	return texts
}

func unflattenQuizzes(src []domain.Quiz, texts []string) []domain.Quiz {
	out := domain.CloneQuizzes(src)
	i := 0
	for qi := range out {
		out[qi].QuestionText = texts[i]
		i++
		for ai := range out[qi].Answers {
			out[qi].Answers[ai].Text = texts[i]
			i++
		}
	}
	return out
}

func (t *Translator) translateText(ctx context.Context, text, lang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var sb strings.Builder
	for i, chunk := range Chunks(text, t.cfg.ChunkSize) {
		if i > 0 && t.cfg.ChunkPause > 0 {
			if err := sleep(ctx, t.cfg.ChunkPause); err != nil {
				return "", err
			}
		}
		out, err := t.translateChunk(ctx, chunk, lang)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func (t *Translator) translateChunk(ctx context.Context, chunk, lang string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= t.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		callCtx, cancel := context.WithTimeout(ctx, t.cfg.CallTimeout)
		out, err := t.client.Translate(callCtx, chunk, t.cfg.SourceLanguage, lang)
		cancel()
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !IsRetryable(err) {
			return "", err
		}

		lastErr = err
		t.logger.Debug("translation chunk retry", "lang", lang, "attempt", attempt, "error", err)
		if attempt < t.cfg.MaxAttempts {
			if err := sleep(ctx, t.cfg.Backoff*time.Duration(attempt)); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("retries exhausted: %w", lastErr)
}

// IsRetryable reports per-call timeouts and rate-limit-class failures.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "too many requests", "try another translator", "length"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Chunks splits text into pieces of at most size runes.
func Chunks(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
