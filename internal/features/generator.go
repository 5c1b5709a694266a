// Package features produces the genre label and quiz set for a simplified article.
package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
)

const (
	minPrimaryQuestions = 3
	defaultTimeout      = 30 * time.Second
)

type primaryQuestion struct {
	Q  string `json:"Q"`
	A  string `json:"A"`
	D1 string `json:"D1"`
	D2 string `json:"D2"`
}

type primaryResponse struct {
	Genre   string            `json:"genre"`
	Quizzes []primaryQuestion `json:"quizzes"`
}

// Generator runs the AI-backed strategy and falls back to the algorithmic one.
type Generator struct {
	primary ports.Generator
	timeout time.Duration
	logger  *logging.Logger
	shuffle func(n int, swap func(i, j int))
	newID   func() string
}

// Option customises a Generator.
type Option func(*Generator)

// WithRand makes answer shuffling reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.shuffle = r.Shuffle }
}

// WithIDFunc replaces uuid generation.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

// New builds a generator around the primary collaborator, which must not be nil.
// Deployments without a provider pass a Generator returning ports.ErrGeneratorUnavailable.
func New(primary ports.Generator, timeout time.Duration, log *logging.Logger, opts ...Option) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &Generator{
		primary: primary,
		timeout: timeout,
		logger:  log,
		shuffle: rand.Shuffle,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate always yields QuizCount quizzes with exactly one correct answer each.
func (g *Generator) Generate(ctx context.Context, text string) domain.FeatureSet {
	set, err := g.generatePrimary(ctx, text)
	if err == nil {
		return set
	}
	if errors.Is(err, ports.ErrGeneratorUnavailable) {
		g.logger.Debug("primary generator unavailable, using fallback")
	} else {
		g.logger.Warn("primary generation failed, using fallback", "error", err)
	}

	return domain.FeatureSet{
		Genre:   domain.GenreGeneral,
		Quizzes: g.Fallback(text),
		Source:  domain.FeaturesFallback,
	}
}

func (g *Generator) generatePrimary(ctx context.Context, text string) (domain.FeatureSet, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.primary.GenerateJSON(callCtx, BuildPrompt(text))
	if err != nil {
		return domain.FeatureSet{}, fmt.Errorf("generate features: %w", err)
	}

	var resp primaryResponse
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &resp); err != nil {
		return domain.FeatureSet{}, fmt.Errorf("decode features: %w", err)
	}

	quizzes := make([]domain.Quiz, 0, domain.QuizCount)
	for _, q := range resp.Quizzes {
		if quiz, ok := g.primaryQuiz(q); ok {
			quizzes = append(quizzes, quiz)
		}
		if len(quizzes) == domain.QuizCount {
			break
		}
	}
	if len(quizzes) < minPrimaryQuestions {
		return domain.FeatureSet{}, fmt.Errorf("generate features: only %d usable questions", len(quizzes))
	}
	if missing := domain.QuizCount - len(quizzes); missing > 0 {
		fallback := g.Fallback(text)
		quizzes = append(quizzes, fallback[len(fallback)-missing:]...)
	}

	return domain.FeatureSet{
		Genre:   domain.ParseGenre(resp.Genre),
		Quizzes: quizzes,
		Source:  domain.FeaturesPrimary,
	}, nil
}

// primaryQuiz rejects questions with empty fields or repeated options.
func (g *Generator) primaryQuiz(q primaryQuestion) (domain.Quiz, bool) {
	texts := []string{strings.TrimSpace(q.A), strings.TrimSpace(q.D1), strings.TrimSpace(q.D2)}
	question := strings.TrimSpace(q.Q)
	if question == "" {
		return domain.Quiz{}, false
	}
	seen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		key := strings.ToLower(t)
		if t == "" {
			return domain.Quiz{}, false
		}
		if _, dup := seen[key]; dup {
			return domain.Quiz{}, false
		}
		seen[key] = struct{}{}
	}

	answers := make([]domain.Answer, 0, len(texts))
	for i, t := range texts {
		answers = append(answers, domain.Answer{ID: g.newID(), Text: t, IsCorrect: i == 0})
	}
	g.shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] })

	return domain.Quiz{
		ID:           g.newID(),
		QuestionText: question,
		QuestionType: domain.QuestionAI,
		Answers:      answers,
	}, true
}
