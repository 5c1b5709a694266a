// Package quality holds the simplifier and the readability/fact gates that drive the retry loop.
package quality

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"NewsSimplifier/internal/domain"
)

const (
	defaultMaxSentences = 20
	minSentenceLen      = 5

	// longSentenceWords is the length above which a sentence is split into clauses.
	longSentenceWords = 12
	minClauseWords    = 4
	// maxFinalWords bounds sentences kept on the last attempt.
	maxFinalWords = 18

	emptyInputFiller = "This is a news article about current events."
	noSentenceFiller = "This is a verified and simplified brief of the news event."
)

// leaked placeholder strings, longest first so fragments never leave residue.
var placeholders = []string{
	"This article lacked sufficient body text in the RSS feed, but the system processed it anyway.",
	"This article lacked sufficient body text in the RSS feed",
	"but the system processed it anyway",
}

type clauseBreak struct {
	sep  string
	lead string
	// subjectOnly requires the right side to open with a word from subjectStarts.
	subjectOnly bool
}

// conjunctionBreaks split coordinated clauses; the lead replaces the separator.
var conjunctionBreaks = []clauseBreak{
	{sep: "; "},
	{sep: ", and "},
	{sep: ", but ", lead: "But "},
	{sep: ", while "},
	{sep: ", so ", lead: "So "},
	{sep: ", although ", lead: "But "},
}

// commaBreak is only used on the last attempt.
var commaBreak = clauseBreak{sep: ", ", subjectOnly: true}

// subjectStarts open an independent clause after a comma.
var subjectStarts = map[string]bool{
	"the": true, "a": true, "an": true, "it": true, "he": true, "she": true,
	"they": true, "we": true, "this": true, "these": true, "its": true,
	"their": true, "his": true, "her": true, "officials": true, "many": true,
	"most": true, "some": true,
}

// plainWords maps long lower-case words to shorter equivalents. Capitalised
// tokens are never rewritten so names stay intact.
var plainWords = map[string]string{
	"additional":    "more",
	"approximately": "about",
	"announced":     "said",
	"assistance":    "help",
	"commence":      "start",
	"commenced":     "started",
	"consequently":  "so",
	"currently":     "now",
	"decreased":     "fell",
	"demonstrate":   "show",
	"demonstrated":  "showed",
	"however":       "but",
	"immediately":   "at once",
	"increased":     "rose",
	"indicated":     "said",
	"individuals":   "people",
	"initially":     "at first",
	"numerous":      "many",
	"obtain":        "get",
	"participate":   "take part",
	"previously":    "before",
	"purchase":      "buy",
	"regarding":     "about",
	"require":       "need",
	"required":      "needed",
	"significant":   "big",
	"significantly": "a lot",
	"subsequently":  "later",
	"sufficient":    "enough",
	"therefore":     "so",
	"utilize":       "use",
	"utilized":      "used",
}

// Simplifier rewrites text into a bounded run of short sentences.
type Simplifier struct {
	maxSentences int
}

// NewSimplifier keeps at most maxSentences sentences; zero selects 20.
func NewSimplifier(maxSentences int) *Simplifier {
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}
	return &Simplifier{maxSentences: maxSentences}
}

// Simplify always returns non-empty text. Attempt 0 selects sentences and
// attempt 1 also splits coordinated clauses. Later attempts additionally split
// before subject words and use plain words; sentences still over maxFinalWords
// are dropped unless none would remain.
func (s *Simplifier) Simplify(text string, attempt int) domain.SimplificationAttempt {
	text = stripPlaceholders(text)
	if text == "" {
		text = emptyInputFiller
	}

	sentences := candidateSentences(text)
	if attempt >= 1 {
		breaks := conjunctionBreaks
		if attempt >= 2 {
			breaks = append(append([]clauseBreak(nil), conjunctionBreaks...), commaBreak)
		}
		sentences = splitLong(sentences, breaks)
	}
	if attempt >= 2 {
		for i, sentence := range sentences {
			sentences[i] = replacePlainWords(sentence)
		}
		if short := filterByWords(sentences, maxFinalWords); len(short) > 0 {
			sentences = short
		}
	}
	if len(sentences) > s.maxSentences {
		sentences = sentences[:s.maxSentences]
	}

	out := noSentenceFiller
	if len(sentences) > 0 {
		out = strings.Join(sentences, " ")
	}
	return domain.SimplificationAttempt{
		Attempt:   attempt,
		Text:      out,
		WordCount: len(strings.Fields(out)),
	}
}

func stripPlaceholders(text string) string {
	text = strings.TrimSpace(text)
	for _, p := range placeholders {
		text = strings.TrimSpace(strings.ReplaceAll(text, p, ""))
	}
	return text
}

// candidateSentences splits on terminal punctuation followed by space or end
// of text, so decimals like 3.5 stay whole. Each sentence ends with a period.
func candidateSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		out = appendSentence(out, string(runes[start:i]))
		start = i + 1
	}
	if start < len(runes) {
		out = appendSentence(out, string(runes[start:]))
	}
	return out
}

func appendSentence(out []string, unit string) []string {
	unit = strings.TrimSpace(unit)
	if utf8.RuneCountInString(unit) > minSentenceLen {
		out = append(out, unit+".")
	}
	return out
}

func splitLong(sentences []string, breaks []clauseBreak) []string {
	var out []string
	for _, sentence := range sentences {
		body := strings.TrimSuffix(sentence, ".")
		for _, clause := range splitClause(body, breaks) {
			out = append(out, capitalize(clause)+".")
		}
	}
	return out
}

// splitClause splits body at the first break whose both sides keep at least
// minClauseWords words, recursing until no long clause can be split.
func splitClause(body string, breaks []clauseBreak) []string {
	if len(strings.Fields(body)) <= longSentenceWords {
		return []string{body}
	}
	for _, b := range breaks {
		offset := 0
		for {
			idx := strings.Index(body[offset:], b.sep)
			if idx < 0 {
				break
			}
			idx += offset
			left := strings.TrimSpace(body[:idx])
			right := strings.TrimSpace(body[idx+len(b.sep):])
			if len(strings.Fields(left)) >= minClauseWords && len(strings.Fields(right)) >= minClauseWords &&
				(!b.subjectOnly || opensWithSubject(right)) {
				return append(splitClause(left, breaks), splitClause(b.lead+right, breaks)...)
			}
			offset = idx + len(b.sep)
		}
	}
	return []string{body}
}

func opensWithSubject(clause string) bool {
	fields := strings.Fields(clause)
	return len(fields) > 0 && subjectStarts[strings.ToLower(fields[0])]
}

func filterByWords(sentences []string, limit int) []string {
	var out []string
	for _, s := range sentences {
		if len(strings.Fields(s)) <= limit {
			out = append(out, s)
		}
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func replacePlainWords(sentence string) string {
	tokens := strings.Fields(sentence)
	for i, tok := range tokens {
		start := strings.IndexFunc(tok, unicode.IsLetter)
		if start < 0 {
			continue
		}
		end := strings.LastIndexFunc(tok, unicode.IsLetter) + 1
		if plain, ok := plainWords[tok[start:end]]; ok {
			tokens[i] = tok[:start] + plain + tok[end:]
		}
	}
	return strings.Join(tokens, " ")
}
