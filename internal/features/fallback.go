package features

import (
	"strings"
	"unicode/utf8"

	"NewsSimplifier/internal/domain"
)

const (
	minFallbackSentenceLen = 10
	developingFiller       = "The situation is still developing as new reports come in"
)

// padding distractors, used in order when the article has too few distinct sentences.
var paddingAnswers = []string{
	"None of the above statements apply.",
	"The article does not mention this.",
}

type template struct {
	question string
	position func(n int) int
}

var templates = []template{
	{question: "Which statement best summarizes a key initial point of the article?", position: func(int) int { return 0 }},
	{question: "Identify an accurate detail mentioned later in the text:", position: func(int) int { return 1 }},
	{question: "Which of these events or facts was explicitly mentioned?", position: func(n int) int { return n / 2 }},
	{question: "According to the article's progression, which statement is true?", position: func(n int) int { return 3 * n / 4 }},
	{question: "Based on the concluding context of the article, what is a correct assertion?", position: func(n int) int { return n - 1 }},
}

// fallbackSentences returns the usable sentences, padded to QuizCount.
func fallbackSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minFallbackSentenceLen {
			out = append(out, s)
		}
	}
	for len(out) < domain.QuizCount {
		out = append(out, developingFiller)
	}
	return out
}

// Fallback builds QuizCount questions from the article's own sentences. It never fails.
func (g *Generator) Fallback(text string) []domain.Quiz {
	sentences := fallbackSentences(text)
	quizzes := make([]domain.Quiz, 0, domain.QuizCount)
	for _, t := range templates {
		quizzes = append(quizzes, g.buildQuestion(t.question, sentences, t.position(len(sentences))))
	}
	return quizzes
}

func (g *Generator) buildQuestion(question string, sentences []string, idx int) domain.Quiz {
	correct := sentences[idx] + "."
	texts := []string{correct}
	seen := map[string]struct{}{correct: {}}

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	g.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, i := range order {
		if len(texts) == domain.AnswersPerQuestion {
			break
		}
		candidate := sentences[i] + "."
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		texts = append(texts, candidate)
	}
	for _, pad := range paddingAnswers {
		if len(texts) == domain.AnswersPerQuestion {
			break
		}
		if _, dup := seen[pad]; !dup {
			seen[pad] = struct{}{}
			texts = append(texts, pad)
		}
	}

	answers := make([]domain.Answer, 0, len(texts))
	for i, t := range texts {
		answers = append(answers, domain.Answer{ID: g.newID(), Text: t, IsCorrect: i == 0})
	}
	g.shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] })

	return domain.Quiz{
		ID:           g.newID(),
		QuestionText: question,
		QuestionType: domain.QuestionDynamic,
		Answers:      answers,
	}
}
