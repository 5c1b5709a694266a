package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/extract"
	"NewsSimplifier/internal/features"
	"NewsSimplifier/internal/langgate"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
	"NewsSimplifier/internal/quality"
	"NewsSimplifier/internal/translate"
)

const (
	defaultMaxArticles    = 3
	defaultScrapeTimeout  = 15 * time.Second
	defaultPersistTimeout = 10 * time.Second
)

// PipelineSettings carries the run-level tunables.
type PipelineSettings struct {
	MaxArticlesPerRun    int
	TranslationLanguages []string
	ExcludeKeywords      []string
	ScrapeTimeout        time.Duration
	PersistTimeout       time.Duration
}

// PipelineDeps wires all driven adapters and stages into the orchestration pipeline.
type PipelineDeps struct {
	Sources    []ports.FeedSource
	Fetcher    ports.PageFetcher
	Repository ports.ArticleRepository
	Extractor  *extract.Extractor
	Gate       *langgate.Gate
	Quality    *quality.Loop
	Features   *features.Generator
	Translator *translate.Translator
	Notifier   ports.Notifier
	Logger     *logging.Logger
	Settings   PipelineSettings

	// Shuffle orders feed sources; defaults to math/rand/v2.
	Shuffle func(n int, swap func(i, j int))
	Now     func() time.Time
}

// Pipeline implements the news-ingestion workflow.
type Pipeline struct {
	sources    []ports.FeedSource
	fetcher    ports.PageFetcher
	repository ports.ArticleRepository
	extractor  *extract.Extractor
	gate       *langgate.Gate
	quality    *quality.Loop
	features   *features.Generator
	translator *translate.Translator
	notifier   ports.Notifier
	logger     *logging.Logger
	settings   PipelineSettings
	shuffle    func(n int, swap func(i, j int))
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	settings := deps.Settings
	if settings.MaxArticlesPerRun <= 0 {
		settings.MaxArticlesPerRun = defaultMaxArticles
	}
	if settings.ScrapeTimeout <= 0 {
		settings.ScrapeTimeout = defaultScrapeTimeout
	}
	if settings.PersistTimeout <= 0 {
		settings.PersistTimeout = defaultPersistTimeout
	}

	p := &Pipeline{
		sources:    deps.Sources,
		fetcher:    deps.Fetcher,
		repository: deps.Repository,
		extractor:  deps.Extractor,
		gate:       deps.Gate,
		quality:    deps.Quality,
		features:   deps.Features,
		translator: deps.Translator,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		settings:   settings,
		shuffle:    deps.Shuffle,
		now:        deps.Now,
	}
	if p.extractor == nil {
		p.extractor = extract.New(0)
	}
	if p.gate == nil {
		p.gate = langgate.New("en", nil, deps.Logger)
	}
	if p.shuffle == nil {
		p.shuffle = rand.Shuffle
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Run walks the shuffled feed sources until MaxArticlesPerRun items succeed.
func (p *Pipeline) Run(ctx context.Context) (domain.BatchSummary, error) {
	summary := domain.NewBatchSummary()

	sources := append([]ports.FeedSource(nil), p.sources...)
	p.shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })

	for _, src := range sources {
		if p.capReached(summary) {
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run pipeline: %w", err)
		}
		if err := p.processSource(ctx, src, &summary); err != nil {
			return summary, fmt.Errorf("run pipeline: %w", err)
		}
	}

	p.logger.Info("ingestion run finished",
		"success", summary.Counts[domain.OutcomeSuccess],
		"fail", summary.Counts[domain.OutcomeFail],
		"skipped", summary.Counts[domain.OutcomeSkipped],
		"error", summary.Counts[domain.OutcomeError],
		"already_known", summary.AlreadyKnown,
	)
	p.notify(ctx, summary)
	return summary, nil
}

func (p *Pipeline) capReached(summary domain.BatchSummary) bool {
	return summary.Counts[domain.OutcomeSuccess] >= p.settings.MaxArticlesPerRun
}

// processSource only returns an error when the run context is done.
func (p *Pipeline) processSource(ctx context.Context, src ports.FeedSource, summary *domain.BatchSummary) error {
	log := p.logger.With("feed", src.Name())

	if p.excluded(src.URL()) {
		log.Info("skipping excluded feed", "url", src.URL())
		summary.Add(domain.Outcome{Status: domain.OutcomeSkipped, Reason: domain.ReasonSourceExcluded, Link: src.URL(), Headline: src.Name()})
		return nil
	}

	feed, err := src.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("feed fetch failed", "error", err)
		return nil
	}
	if p.excluded(feed.Title) {
		log.Info("skipping excluded feed", "title", feed.Title)
		summary.Add(domain.Outcome{Status: domain.OutcomeSkipped, Reason: domain.ReasonSourceExcluded, Link: src.URL(), Headline: feed.Title})
		return nil
	}
	if len(feed.Items) == 0 {
		log.Info("feed has no entries")
		return nil
	}

	for _, item := range feed.Items {
		if p.capReached(*summary) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Publisher == "" {
			item.Publisher = feed.Title
		}
		summary.Add(p.processEntry(ctx, item))
	}
	return nil
}

func (p *Pipeline) excluded(value string) bool {
	value = strings.ToLower(value)
	for _, kw := range p.settings.ExcludeKeywords {
		if kw != "" && strings.Contains(value, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// processEntry runs the dedup lookup before any per-item work.
func (p *Pipeline) processEntry(ctx context.Context, item domain.FeedItem) domain.Outcome {
	base := domain.Outcome{Link: item.Link, Headline: item.Title}
	if strings.TrimSpace(item.Link) == "" {
		return withStatus(base, domain.OutcomeSkipped, domain.ReasonMissingLink)
	}

	exists, err := p.repository.Exists(ctx, item.Link)
	if err != nil {
		p.logger.Error("dedup lookup failed", "link", item.Link, "error", err)
		return withStatus(base, domain.OutcomeError, fmt.Sprintf("dedup lookup: %v", err))
	}
	if exists {
		return withStatus(base, domain.OutcomeSkipped, domain.ReasonAlreadyIngested)
	}

	return p.ProcessItem(ctx, item)
}

func withStatus(o domain.Outcome, status domain.OutcomeStatus, reason string) domain.Outcome {
	o.Status = status
	o.Reason = reason
	return o
}

// ProcessItem carries one new entry through every stage and returns its terminal outcome.
func (p *Pipeline) ProcessItem(ctx context.Context, item domain.FeedItem) (out domain.Outcome) {
	base := domain.Outcome{Link: item.Link, Headline: item.Title}
	log := p.logger.With("link", item.Link)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while processing item", "panic", r)
			out = withStatus(base, domain.OutcomeError, fmt.Sprintf("panic: %v", r))
		}
	}()

	if d := p.gate.CheckHeadline(item.Title, item.Description, item.Summary); !d.Accepted {
		log.Info("headline rejected", "language", d.Language, "reason", d.Reason)
		return withStatus(base, domain.OutcomeSkipped, domain.ReasonNonTargetLanguage)
	}

	content, err := p.extractor.Extract(item, p.scrape(ctx, item.Link))
	if errors.Is(err, extract.ErrInsufficientContent) {
		log.Info("insufficient content", "length", content.Length)
		return withStatus(base, domain.OutcomeSkipped, domain.ReasonInsufficientContent)
	}
	if err != nil {
		return withStatus(base, domain.OutcomeError, fmt.Sprintf("extract: %v", err))
	}
	log.Debug("content extracted", "length", content.Length, "feed_length", content.FeedLength, "scraped_length", content.ScrapedLength)

	if d := p.gate.CheckContent(ctx, content.Text); !d.Accepted {
		log.Info("content rejected", "language", d.Language, "reason", d.Reason)
		return withStatus(base, domain.OutcomeSkipped, domain.ReasonNonTargetLanguage)
	}

	result, err := p.quality.Run(ctx, content.Text)
	if errors.Is(err, quality.ErrMaxRetries) {
		return p.fail(ctx, base, item, content)
	}
	if err != nil {
		return withStatus(base, domain.OutcomeError, fmt.Sprintf("quality loop: %v", err))
	}

	set := p.features.Generate(ctx, result.Attempt.Text)

	var translations map[string]domain.TranslationPayload
	if p.translator != nil && len(p.settings.TranslationLanguages) > 0 {
		translations = p.translator.TranslateAll(ctx, translate.Content{
			Headline:       item.Title,
			SimplifiedText: result.Attempt.Text,
			OriginalText:   content.Text,
			Genre:          string(set.Genre),
			Quizzes:        set.Quizzes,
		}, p.settings.TranslationLanguages)
	}

	verification := result.Verification
	record := domain.ArticleRecord{
		ID:                 uuid.NewString(),
		Original:           p.original(item, content),
		SimplifiedHeadline: item.Title,
		SimplifiedText:     result.Attempt.Text,
		ReadabilityScore:   result.Attempt.ReadabilityScore,
		WordCount:          result.Attempt.WordCount,
		Genre:              set.Genre,
		ProcessingStatus:   domain.StatusPass,
		FactVerification:   &verification,
		Quizzes:            set.Quizzes,
		Translations:       translations,
		CreatedAt:          p.now().UTC(),
	}

	if err := p.persist(ctx, record); err != nil {
		log.Error("persist failed", "error", err)
		return withStatus(base, domain.OutcomeError, err.Error())
	}

	log.Info("article ingested", "attempts", result.Attempts, "genre", set.Genre, "features", set.Source)
	out = withStatus(base, domain.OutcomeSuccess, "")
	out.Record = &record
	return out
}

// fail persists the degraded record for an item that exhausted its retries.
func (p *Pipeline) fail(ctx context.Context, base domain.Outcome, item domain.FeedItem, content domain.ExtractedContent) domain.Outcome {
	record := domain.ArticleRecord{
		ID:                 uuid.NewString(),
		Original:           p.original(item, content),
		SimplifiedHeadline: domain.FailedHeadline,
		SimplifiedText:     domain.FailedBody,
		ProcessingStatus:   domain.StatusFail,
		CreatedAt:          p.now().UTC(),
	}
	if err := p.persist(ctx, record); err != nil {
		p.logger.Error("persist failed record", "link", item.Link, "error", err)
		return withStatus(base, domain.OutcomeError, err.Error())
	}

	p.logger.Warn("quality gate exhausted", "link", item.Link)
	out := withStatus(base, domain.OutcomeFail, domain.ReasonMaxRetries)
	out.Record = &record
	return out
}

func (p *Pipeline) original(item domain.FeedItem, content domain.ExtractedContent) domain.OriginalArticle {
	published := item.PublishedAt
	if published.IsZero() {
		published = p.now()
	}
	return domain.OriginalArticle{
		SourceURL:     item.Link,
		PublisherName: item.Publisher,
		Headline:      item.Title,
		RawText:       content.Text,
		PublishedDate: published.UTC().Format(time.RFC3339),
	}
}

// scrape degrades every failure to an empty body.
func (p *Pipeline) scrape(ctx context.Context, link string) string {
	if p.fetcher == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, p.settings.ScrapeTimeout)
	defer cancel()

	body, err := p.fetcher.Fetch(ctx, link)
	if err != nil {
		p.logger.Warn("page fetch failed, using feed text", "link", link, "error", err)
		return ""
	}
	return body
}

// persist is detached from run cancellation and bounded by its own timeout.
func (p *Pipeline) persist(ctx context.Context, record domain.ArticleRecord) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.settings.PersistTimeout)
	defer cancel()

	if err := p.repository.Insert(ctx, record); err != nil {
		return fmt.Errorf("persist article %s: %w", record.Original.SourceURL, err)
	}
	return nil
}

func (p *Pipeline) notify(ctx context.Context, summary domain.BatchSummary) {
	if p.notifier == nil || summary.Processed == 0 {
		return
	}
	if err := p.notifier.PublishSummary(ctx, summary.String()); err != nil {
		p.logger.Warn("publish summary failed", "error", err)
	}
}
