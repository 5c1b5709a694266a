package quality

import (
	"context"
	"strings"
	"unicode"

	"NewsSimplifier/internal/ports"
)

var _ ports.ReadabilityScorer = (*FleschKincaid)(nil)

// FleschKincaid grades text with the Flesch-Kincaid grade-level formula.
type FleschKincaid struct{}

// NewFleschKincaid returns the local readability scorer.
func NewFleschKincaid() *FleschKincaid {
	return &FleschKincaid{}
}

// Score returns the grade level, clamped at zero. Empty text scores zero.
func (FleschKincaid) Score(_ context.Context, text string) (float64, error) {
	return GradeLevel(text), nil
}

// GradeLevel computes 0.39*(words/sentence) + 11.8*(syllables/word) - 15.59.
func GradeLevel(text string) float64 {
	words := 0
	syllables := 0
	for _, tok := range strings.Fields(text) {
		w := letters(tok)
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0
	}

	sentences := countSentences(text)
	grade := 0.39*float64(words)/float64(sentences) + 11.8*float64(syllables)/float64(words) - 15.59
	if grade < 0 {
		return 0
	}
	return grade
}

func letters(tok string) string {
	return strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

func countSentences(text string) int {
	n := 0
	inSentence := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if inSentence {
				n++
			}
			inSentence = false
		default:
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				inSentence = true
			}
		}
	}
	if inSentence {
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// countSyllables approximates syllables by vowel groups with a silent trailing e.
func countSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}
