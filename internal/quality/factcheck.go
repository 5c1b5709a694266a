package quality

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/ports"
)

const maxReportedEntities = 5

var _ ports.FactVerifier = (*FactChecker)(nil)

// FactChecker verifies that names and numbers in a candidate also occur in the original.
type FactChecker struct {
	minConfidence float64
}

// NewFactChecker passes candidates whose confidence is at least minConfidence.
func NewFactChecker(minConfidence float64) *FactChecker {
	return &FactChecker{minConfidence: minConfidence}
}

// Verify scores matched / total entities as a percentage; no entities scores 100.
func (f *FactChecker) Verify(_ context.Context, original, candidate string) (domain.FactVerification, error) {
	known := tokenSet(original)
	entities := extractEntities(candidate)

	var missing []string
	matched := 0
	for _, e := range entities {
		if _, ok := known[e]; ok {
			matched++
			continue
		}
		missing = append(missing, e)
	}

	confidence := 100.0
	if len(entities) > 0 {
		confidence = float64(matched) / float64(len(entities)) * 100
	}

	out := domain.FactVerification{
		ConfidencePct:   confidence,
		MatchedEntities: matched,
		Passed:          confidence >= f.minConfidence,
	}
	if !out.Passed {
		if len(missing) > maxReportedEntities {
			missing = missing[:maxReportedEntities]
		}
		reason := fmt.Sprintf("unverified entities: %s", strings.Join(missing, ", "))
		out.FailureReason = &reason
	}
	return out, nil
}

func trimToken(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		if t := trimToken(tok); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// extractEntities returns capitalised tokens not opening a sentence plus any numeric token.
func extractEntities(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	sentenceStart := true
	for _, raw := range strings.Fields(text) {
		tok := trimToken(raw)
		if tok != "" && isEntity(tok, sentenceStart) {
			if _, dup := seen[tok]; !dup {
				seen[tok] = struct{}{}
				out = append(out, tok)
			}
		}
		sentenceStart = endsSentence(raw)
	}
	return out
}

func endsSentence(raw string) bool {
	raw = strings.TrimRight(raw, `"')]`)
	return strings.HasSuffix(raw, ".") || strings.HasSuffix(raw, "!") || strings.HasSuffix(raw, "?")
}

func isEntity(tok string, sentenceStart bool) bool {
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	first := []rune(tok)[0]
	return !sentenceStart && unicode.IsUpper(first)
}
