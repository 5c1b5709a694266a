package quality

import (
	"context"
	"errors"
	"fmt"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
)

// ErrMaxRetries is returned when no attempt passes both gates.
var ErrMaxRetries = errors.New("quality gate exhausted retries")

type state int

const (
	stateAttempt state = iota
	statePassed
	stateExhausted
)

// LoopConfig bounds the retry loop and sets its thresholds.
type LoopConfig struct {
	MaxRetries         int
	ReadabilityCeiling float64
	MinFactConfidence  float64
}

// Result is the outcome of a loop run. Attempt holds the last candidate produced.
type Result struct {
	Attempt      domain.SimplificationAttempt
	Verification domain.FactVerification
	Attempts     int
}

// Loop alternates simplification with the readability and fact gates.
type Loop struct {
	simplifier *Simplifier
	scorer     ports.ReadabilityScorer
	verifier   ports.FactVerifier
	cfg        LoopConfig
	logger     *logging.Logger
}

// NewLoop wires the gates. MaxRetries below one is treated as one.
func NewLoop(simplifier *Simplifier, scorer ports.ReadabilityScorer, verifier ports.FactVerifier, cfg LoopConfig, log *logging.Logger) *Loop {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Loop{simplifier: simplifier, scorer: scorer, verifier: verifier, cfg: cfg, logger: log}
}

// Run drives ATTEMPT(i) until PASSED or EXHAUSTED.
func (l *Loop) Run(ctx context.Context, original string) (Result, error) {
	var res Result
	st := stateAttempt

	for attempt := 0; st == stateAttempt; attempt++ {
		if attempt >= l.cfg.MaxRetries {
			st = stateExhausted
			break
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("quality loop: %w", err)
		}

		res.Attempts = attempt + 1
		if l.try(ctx, attempt, original, &res) {
			st = statePassed
		}
	}

	if st == stateExhausted {
		return res, ErrMaxRetries
	}
	return res, nil
}

// try runs one attempt and reports whether both gates passed.
func (l *Loop) try(ctx context.Context, attempt int, original string, res *Result) bool {
	candidate := l.simplifier.Simplify(original, attempt)

	score, err := l.scorer.Score(ctx, candidate.Text)
	if err != nil {
		l.logger.Warn("readability scoring failed", "attempt", attempt, "error", err)
		res.Attempt = candidate
		return false
	}
	candidate.ReadabilityScore = score
	res.Attempt = candidate

	if score > l.cfg.ReadabilityCeiling {
		l.logger.Info("readability above ceiling, retrying", "attempt", attempt, "score", score, "ceiling", l.cfg.ReadabilityCeiling)
		return false
	}

	verification, err := l.verifier.Verify(ctx, original, candidate.Text)
	if err != nil {
		l.logger.Warn("fact verification failed", "attempt", attempt, "error", err)
		return false
	}
	res.Verification = verification

	if !verification.Passed || verification.ConfidencePct < l.cfg.MinFactConfidence {
		reason := ""
		if verification.FailureReason != nil {
			reason = *verification.FailureReason
		}
		l.logger.Info("fact check failed, retrying", "attempt", attempt, "confidence", verification.ConfidencePct, "reason", reason)
		return false
	}
	return true
}
