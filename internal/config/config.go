package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigPathEnv names the YAML file read by Load.
	ConfigPathEnv     = "NEWS_SIMPLIFIER_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	redisAddrEnv      = "REDIS_ADDR"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	chatAPIKeyEnv     = "CHAT_API_KEY"
	translateKeyEnv   = "TRANSLATE_API_KEY"
	mlInferenceURLEnv = "ML_INFERENCE_URL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Redis         RedisConfig        `yaml:"redis"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Scrape        ScrapeConfig       `yaml:"scrape"`
	Generator     GeneratorConfig    `yaml:"generator"`
	Translation   TranslationConfig  `yaml:"translation"`
	ML            MLConfig           `yaml:"ml"`
	Notifications NotificationConfig `yaml:"notifications"`
	Feeds         []FeedConfig       `yaml:"feeds" validate:"dive"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details; an empty DSN selects the in-memory store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig enables the cross-process run lock when Addr is set.
type RedisConfig struct {
	Addr    string        `yaml:"addr"`
	LockKey string        `yaml:"lockKey"`
	LockTTL time.Duration `yaml:"lockTtl"`
}

// SchedulerConfig defines how often the ingestion run is triggered.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
}

// PipelineConfig carries the tunable thresholds of the ingestion pipeline.
type PipelineConfig struct {
	MaxArticlesPerRun      int      `yaml:"maxArticlesPerRun" validate:"gte=1"`
	MaxRetries             int      `yaml:"maxRetries" validate:"gte=1"`
	// ReadabilityCeiling is a Flesch-Kincaid grade level.
	ReadabilityCeiling     float64  `yaml:"readabilityCeiling" validate:"gt=0"`
	MinFactConfidence      float64  `yaml:"minFactConfidence" validate:"gte=0,lte=100"`
	MinContentLength       int      `yaml:"minContentLength" validate:"gte=1"`
	MaxSimplifiedSentences int      `yaml:"maxSimplifiedSentences" validate:"gte=1"`
	TargetLanguage         string   `yaml:"targetLanguage" validate:"required"`
	TranslationLanguages   []string `yaml:"translationLanguages"`
	ExcludeKeywords        []string `yaml:"excludeKeywords"`
}

// ScrapeConfig tunes the article page fetcher.
type ScrapeConfig struct {
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent string        `yaml:"userAgent"`
}

// GeneratorConfig selects the generative-text provider: "gemini", "openai" or "" (disabled).
type GeneratorConfig struct {
	Provider     string        `yaml:"provider" validate:"omitempty,oneof=gemini openai"`
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"apiKey"`
	Endpoint     string        `yaml:"endpoint"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
}

// TranslationConfig tunes the chunked translation fan-out.
type TranslationConfig struct {
	APIKey      string        `yaml:"apiKey"`
	ChunkSize   int           `yaml:"chunkSize" validate:"gte=1"`
	MaxAttempts int           `yaml:"maxAttempts" validate:"gte=1"`
	Backoff     time.Duration `yaml:"backoff"`
	CallTimeout time.Duration `yaml:"callTimeout" validate:"gt=0"`
	ChunkPause  time.Duration `yaml:"chunkPause"`
}

// MLConfig points at an optional remote readability/fact-check service.
type MLConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// FeedConfig is one syndication source.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url" validate:"required,url"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints declared in struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Redis.Addr = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Generator.APIKey = v
		if c.Generator.Provider == "" {
			c.Generator.Provider = "gemini"
		}
	}

	if v := os.Getenv(chatAPIKeyEnv); v != "" {
		c.Generator.APIKey = v
		if c.Generator.Provider == "" {
			c.Generator.Provider = "openai"
		}
	}

	if v := os.Getenv(translateKeyEnv); v != "" {
		c.Translation.APIKey = v
	}

	if v := os.Getenv(mlInferenceURLEnv); v != "" {
		c.ML.InferenceURL = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Redis.Addr != "" {
		base.Redis.Addr = override.Redis.Addr
	}
	if override.Redis.LockKey != "" {
		base.Redis.LockKey = override.Redis.LockKey
	}
	if override.Redis.LockTTL > 0 {
		base.Redis.LockTTL = override.Redis.LockTTL
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	base.Pipeline = mergePipeline(base.Pipeline, override.Pipeline)

	if override.Scrape.Timeout > 0 {
		base.Scrape.Timeout = override.Scrape.Timeout
	}
	if override.Scrape.UserAgent != "" {
		base.Scrape.UserAgent = override.Scrape.UserAgent
	}

	if override.Generator.Provider != "" {
		base.Generator.Provider = override.Generator.Provider
	}
	if override.Generator.Model != "" {
		base.Generator.Model = override.Generator.Model
	}
	if override.Generator.APIKey != "" {
		base.Generator.APIKey = override.Generator.APIKey
	}
	if override.Generator.Endpoint != "" {
		base.Generator.Endpoint = override.Generator.Endpoint
	}
	if override.Generator.SystemPrompt != "" {
		base.Generator.SystemPrompt = override.Generator.SystemPrompt
	}
	if override.Generator.Timeout > 0 {
		base.Generator.Timeout = override.Generator.Timeout
	}

	if override.Translation.APIKey != "" {
		base.Translation.APIKey = override.Translation.APIKey
	}
	if override.Translation.ChunkSize > 0 {
		base.Translation.ChunkSize = override.Translation.ChunkSize
	}
	if override.Translation.MaxAttempts > 0 {
		base.Translation.MaxAttempts = override.Translation.MaxAttempts
	}
	if override.Translation.Backoff > 0 {
		base.Translation.Backoff = override.Translation.Backoff
	}
	if override.Translation.CallTimeout > 0 {
		base.Translation.CallTimeout = override.Translation.CallTimeout
	}
	if override.Translation.ChunkPause > 0 {
		base.Translation.ChunkPause = override.Translation.ChunkPause
	}

	if override.ML.InferenceURL != "" {
		base.ML.InferenceURL = override.ML.InferenceURL
	}
	if override.ML.APIKey != "" {
		base.ML.APIKey = override.ML.APIKey
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func mergePipeline(base, override PipelineConfig) PipelineConfig {
	if override.MaxArticlesPerRun > 0 {
		base.MaxArticlesPerRun = override.MaxArticlesPerRun
	}
	if override.MaxRetries > 0 {
		base.MaxRetries = override.MaxRetries
	}
	if override.ReadabilityCeiling > 0 {
		base.ReadabilityCeiling = override.ReadabilityCeiling
	}
	if override.MinFactConfidence > 0 {
		base.MinFactConfidence = override.MinFactConfidence
	}
	if override.MinContentLength > 0 {
		base.MinContentLength = override.MinContentLength
	}
	if override.MaxSimplifiedSentences > 0 {
		base.MaxSimplifiedSentences = override.MaxSimplifiedSentences
	}
	if override.TargetLanguage != "" {
		base.TargetLanguage = override.TargetLanguage
	}
	if override.TranslationLanguages != nil {
		base.TranslationLanguages = override.TranslationLanguages
	}
	if override.ExcludeKeywords != nil {
		base.ExcludeKeywords = override.ExcludeKeywords
	}
	return base
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Redis:     RedisConfig{LockKey: "news-simplifier:ingestion-run", LockTTL: 10 * time.Minute},
		Scheduler: SchedulerConfig{Interval: 2 * time.Minute},
		Pipeline: PipelineConfig{
			MaxArticlesPerRun:      3,
			MaxRetries:             3,
			ReadabilityCeiling:     10,
			MinFactConfidence:      90,
			MinContentLength:       100,
			MaxSimplifiedSentences: 20,
			TargetLanguage:         "en",
			TranslationLanguages:   []string{"hi", "ta"},
			ExcludeKeywords:        []string{"hindi"},
		},
		Scrape: ScrapeConfig{
			Timeout:   15 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Generator: GeneratorConfig{
			Model:        "gemini-2.5-flash-lite",
			Endpoint:     "https://api.groq.com/openai/v1/chat/completions",
			SystemPrompt: "You are a specialized AI assistant that outputs only valid JSON objects.",
			Timeout:      30 * time.Second,
		},
		Translation: TranslationConfig{
			ChunkSize:   4800,
			MaxAttempts: 3,
			Backoff:     2 * time.Second,
			CallTimeout: 15 * time.Second,
			ChunkPause:  300 * time.Millisecond,
		},
		Feeds: []FeedConfig{
			{Name: "bbc-world", URL: "http://feeds.bbci.co.uk/news/world/rss.xml"},
			{Name: "bbc-technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
			{Name: "the-hindu-national", URL: "https://www.thehindu.com/news/national/feeder/default.rss"},
		},
	}
}
