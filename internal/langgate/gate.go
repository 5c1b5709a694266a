// Package langgate rejects non-target-language content before expensive work happens.
package langgate

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
)

const (
	headlinePrefix   = 200
	contentPrefix    = 500
	minDetectLength  = 50
	languageUnknown  = "unknown"
	defaultTargetISO = "en"
)

type scriptRange struct {
	name   string
	lo, hi rune
}

var nonLatinScripts = []scriptRange{
	{name: "hi", lo: 'ऀ', hi: 'ॿ'},
	{name: "zh", lo: '一', hi: '鿿'},
	{name: "ar", lo: '؀', hi: 'ۿ'},
	{name: "ru", lo: 'Ѐ', hi: 'ӿ'},
}

// Decision is the verdict of a gate check.
type Decision struct {
	Accepted bool
	Language string
	Reason   string
}

func accept(lang string) Decision {
	return Decision{Accepted: true, Language: lang}
}

func reject(lang, reason string) Decision {
	return Decision{Language: lang, Reason: reason}
}

// DetectScript returns the language hinted by the first non-Latin script codepoint
// within the first limit runes.
func DetectScript(text string, limit int) (string, bool) {
	n := 0
	for _, r := range text {
		if n >= limit {
			break
		}
		n++
		for _, sr := range nonLatinScripts {
			if r >= sr.lo && r <= sr.hi {
				return sr.name, true
			}
		}
	}
	return "", false
}

// HasNonLatinScript reports whether any non-Latin script codepoint appears in the prefix.
func HasNonLatinScript(text string, limit int) bool {
	_, found := DetectScript(text, limit)
	return found
}

// Gate applies the cheap script scan and an optional detector capability.
type Gate struct {
	target   string
	detector ports.LanguageDetector
	logger   *logging.Logger
}

// New builds a gate for the target ISO 639-1 language.
func New(target string, detector ports.LanguageDetector, log *logging.Logger) *Gate {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = defaultTargetISO
	}
	return &Gate{target: target, detector: detector, logger: log}
}

// CheckHeadline runs before any network fetch on the headline and raw feed summaries.
func (g *Gate) CheckHeadline(headline string, feedTexts ...string) Decision {
	if lang, found := DetectScript(headline, headlinePrefix); found {
		return reject(lang, "headline contains non-Latin script")
	}
	for _, t := range feedTexts {
		if lang, found := DetectScript(t, headlinePrefix); found {
			return reject(lang, "feed content contains non-Latin script")
		}
	}
	return accept(g.target)
}

// CheckContent inspects the merged text; an undetermined language is accepted.
func (g *Gate) CheckContent(ctx context.Context, text string) Decision {
	if utf8.RuneCountInString(text) < minDetectLength {
		return accept(languageUnknown)
	}
	if lang, found := DetectScript(text, contentPrefix); found {
		return reject(lang, fmt.Sprintf("content is in %s", lang))
	}
	if g.detector == nil {
		return accept(g.target)
	}

	lang, ok := g.detector.Detect(ctx, prefix(text, contentPrefix))
	if !ok {
		g.logger.Debug("language undetermined, accepting")
		return accept(g.target)
	}
	if lang != g.target {
		return reject(lang, fmt.Sprintf("content is in %s", lang))
	}
	return accept(lang)
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
