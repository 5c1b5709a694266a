// Package app wires configuration to adapters, stages and the scheduler.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"NewsSimplifier/internal/config"
	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/extract"
	"NewsSimplifier/internal/features"
	"NewsSimplifier/internal/infrastructure/feed"
	"NewsSimplifier/internal/infrastructure/language"
	"NewsSimplifier/internal/infrastructure/llm"
	"NewsSimplifier/internal/infrastructure/lock"
	"NewsSimplifier/internal/infrastructure/ml"
	"NewsSimplifier/internal/infrastructure/scheduler"
	"NewsSimplifier/internal/infrastructure/scraper"
	"NewsSimplifier/internal/infrastructure/storage"
	"NewsSimplifier/internal/infrastructure/telegram"
	"NewsSimplifier/internal/infrastructure/translation"
	"NewsSimplifier/internal/langgate"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
	"NewsSimplifier/internal/quality"
	"NewsSimplifier/internal/translate"
	"NewsSimplifier/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *logging.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	closers   []func() error
}

// New builds a runnable application. External services are optional; each
// falls back to a local implementation when unconfigured.
func New(ctx context.Context, cfg config.Config, baseLogger *logging.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger}

	repo, err := a.repository(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	runLock, err := a.runLock(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Scrape.Timeout}
	sources := make([]ports.FeedSource, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		name := f.Name
		if name == "" {
			name = f.URL
		}
		sources = append(sources, feed.NewSource(name, f.URL, cfg.Scrape.UserAgent, cfg.Scrape.Timeout, httpClient))
	}

	scorer, verifier := a.qualityBackends()
	loop := quality.NewLoop(
		quality.NewSimplifier(cfg.Pipeline.MaxSimplifiedSentences),
		scorer,
		verifier,
		quality.LoopConfig{
			MaxRetries:         cfg.Pipeline.MaxRetries,
			ReadabilityCeiling: cfg.Pipeline.ReadabilityCeiling,
			MinFactConfidence:  cfg.Pipeline.MinFactConfidence,
		},
		baseLogger.With("component", "quality"),
	)

	generator := features.New(a.generator(ctx), cfg.Generator.Timeout, baseLogger.With("component", "features"))

	translator := translate.New(a.translationClient(ctx), translate.Config{
		SourceLanguage: cfg.Pipeline.TargetLanguage,
		ChunkSize:      cfg.Translation.ChunkSize,
		MaxAttempts:    cfg.Translation.MaxAttempts,
		Backoff:        cfg.Translation.Backoff,
		CallTimeout:    cfg.Translation.CallTimeout,
		ChunkPause:     cfg.Translation.ChunkPause,
	}, baseLogger.With("component", "translate"))

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Sources:    sources,
		Fetcher:    scraper.NewPageFetcher(httpClient, cfg.Scrape.UserAgent, cfg.Scrape.Timeout),
		Repository: repo,
		Extractor:  extract.New(cfg.Pipeline.MinContentLength),
		Gate:       langgate.New(cfg.Pipeline.TargetLanguage, language.NewLingua(), baseLogger.With("component", "langgate")),
		Quality:    loop,
		Features:   generator,
		Translator: translator,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
		Settings: usecase.PipelineSettings{
			MaxArticlesPerRun:    cfg.Pipeline.MaxArticlesPerRun,
			TranslationLanguages: cfg.Pipeline.TranslationLanguages,
			ExcludeKeywords:      cfg.Pipeline.ExcludeKeywords,
			ScrapeTimeout:        cfg.Scrape.Timeout,
		},
	})

	a.scheduler = usecase.NewScheduler(
		scheduler.NewIntervalScheduler(cfg.Scheduler.Interval),
		a.pipeline,
		runLock,
		baseLogger.With("component", "scheduler"),
	)
	return a, nil
}

func (a *Application) repository(ctx context.Context) (ports.ArticleRepository, error) {
	if a.cfg.Database.DSN == "" {
		a.logger.Warn("database DSN not set, using in-memory repository")
		return storage.NewMemoryRepository(), nil
	}

	db, err := storage.Open(ctx, a.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, nil
}

func (a *Application) runLock(ctx context.Context) (ports.RunLock, error) {
	if a.cfg.Redis.Addr == "" {
		return lock.NewLocal(), nil
	}

	client, err := lock.Dial(ctx, a.cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	return lock.NewRedis(client, a.cfg.Redis.LockKey, a.cfg.Redis.LockTTL), nil
}

func (a *Application) generator(ctx context.Context) ports.Generator {
	gc := a.cfg.Generator
	switch {
	case gc.APIKey == "":
		a.logger.Warn("generator API key not set, quizzes use the algorithmic fallback")
		return llm.Disabled{}
	case gc.Provider == "openai":
		return llm.NewChatClient(gc)
	default:
		client, err := llm.NewGeminiClient(ctx, gc.APIKey, gc.Model)
		if err != nil {
			a.logger.Warn("gemini client unavailable", "error", err)
			return llm.Disabled{}
		}
		a.closers = append(a.closers, client.Close)
		return client
	}
}

func (a *Application) translationClient(ctx context.Context) ports.TranslationClient {
	if a.cfg.Translation.APIKey == "" {
		if len(a.cfg.Pipeline.TranslationLanguages) > 0 {
			a.logger.Warn("translation API key not set, translations will be unavailable")
		}
		return translation.Disabled{}
	}
	client, err := translation.NewGoogleClient(ctx, a.cfg.Translation.APIKey)
	if err != nil {
		a.logger.Warn("translation client unavailable", "error", err)
		return translation.Disabled{}
	}
	return client
}

func (a *Application) qualityBackends() (ports.ReadabilityScorer, ports.FactVerifier) {
	if a.cfg.ML.InferenceURL != "" {
		client := ml.NewClient(a.cfg.ML.InferenceURL, a.cfg.ML.APIKey, nil)
		return client, client
	}
	return quality.NewFleschKincaid(), quality.NewFactChecker(a.cfg.Pipeline.MinFactConfidence)
}

// RunOnce performs a single locked pipeline execution.
func (a *Application) RunOnce(ctx context.Context) (domain.BatchSummary, bool, error) {
	return a.scheduler.RunOnce(ctx, time.Now())
}

// Serve runs the pipeline on the configured interval until ctx is done.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "interval", a.cfg.Scheduler.Interval, "feeds", len(a.cfg.Feeds))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

// Close releases external connections.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
