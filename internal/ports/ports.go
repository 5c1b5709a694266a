package ports

import (
	"context"
	"errors"
	"time"

	"NewsSimplifier/internal/domain"
)

// ErrGeneratorUnavailable is returned by a Generator that has no configured provider.
var ErrGeneratorUnavailable = errors.New("generator unavailable")

// FeedSource yields the ordered entries of one syndication feed.
type FeedSource interface {
	Name() string
	URL() string
	Fetch(ctx context.Context) (domain.Feed, error)
}

// PageFetcher downloads an article page and returns its readable body text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ArticleRepository persists records; Exists is the dedup lookup by canonical link.
type ArticleRepository interface {
	Exists(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, record domain.ArticleRecord) error
}

// Generator is a generative-text collaborator returning a JSON document.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// LanguageDetector identifies the ISO 639-1 code of a text; ok is false when undetermined.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (lang string, ok bool)
}

// ReadabilityScorer grades text complexity; lower is simpler.
type ReadabilityScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// FactVerifier checks a simplified candidate against its original.
type FactVerifier interface {
	Verify(ctx context.Context, original, candidate string) (domain.FactVerification, error)
}

// TranslationClient translates one bounded chunk of text.
type TranslationClient interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Notifier publishes run summaries to an outbound channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// RunLock guarantees at most one in-flight orchestration run.
type RunLock interface {
	TryAcquire(ctx context.Context) (release func(), acquired bool, err error)
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
