// Package language provides LanguageDetector implementations.
package language

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"

	"NewsSimplifier/internal/ports"
)

// commonNewsLanguages covers the feeds we ingest plus the scripts the gate already rejects.
var commonNewsLanguages = []lingua.Language{
	lingua.English, lingua.German, lingua.French, lingua.Spanish,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Swedish,
	lingua.Hindi, lingua.Tamil, lingua.Chinese, lingua.Russian, lingua.Arabic,
}

// Lingua wraps a lingua-go detector.
type Lingua struct {
	detector lingua.LanguageDetector
}

var _ ports.LanguageDetector = (*Lingua)(nil)

// NewLingua builds a detector restricted to languages; nil selects common news languages.
func NewLingua(languages ...lingua.Language) *Lingua {
	if len(languages) == 0 {
		languages = commonNewsLanguages
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &Lingua{detector: detector}
}

// Detect returns the lower-case ISO 639-1 code of the most likely language.
func (l *Lingua) Detect(_ context.Context, text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// Noop never determines a language.
type Noop struct{}

var _ ports.LanguageDetector = Noop{}

func (Noop) Detect(context.Context, string) (string, bool) { return "", false }
