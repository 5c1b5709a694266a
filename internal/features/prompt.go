package features

import (
	"fmt"
	"strings"

	"NewsSimplifier/internal/domain"
)

const promptTemplate = `You are a strict, factual quiz generator and news categorizer. Read the article below.

First, categorize the article into exactly ONE of the following genres:
%s.

Second, generate exactly %d multiple-choice questions.
Rules:
1. Every option (both correct and distractors) must be based on information found in the text.
2. The correct answer must be unambiguously true based on the article.
3. The distractors must be plausible statements from the text applied incorrectly to the question.
4. Output only valid JSON. No markdown blocks, no conversational text.

JSON format:
{
  "genre": "chosen_genre",
  "quizzes": [
    {"Q": "Question?", "A": "Correct answer", "D1": "Distractor 1", "D2": "Distractor 2"}
  ]
}

Article:
%s
`

// BuildPrompt renders the genre-and-quiz request for a simplified article.
func BuildPrompt(text string) string {
	genres := make([]string, 0, len(domain.Genres))
	for _, g := range domain.Genres {
		genres = append(genres, fmt.Sprintf("%q", string(g)))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(genres, ", "), domain.QuizCount, text)
}

// CleanJSONBlock removes markdown code fences a model may wrap around JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.Contains(first, " ") && !strings.Contains(first, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
