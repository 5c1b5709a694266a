package domain

import "strings"

// Genre is one label of the closed category set.
type Genre string

const (
	GenreWorldNews     Genre = "World News"
	GenreNationalNews  Genre = "National News"
	GenrePolitics      Genre = "Politics"
	GenreTechnology    Genre = "Technology"
	GenreBusiness      Genre = "Business"
	GenreSports        Genre = "Sports"
	GenreHealth        Genre = "Health"
	GenreScience       Genre = "Science"
	GenreEntertainment Genre = "Entertainment"
	GenreGeneral       Genre = "General"
)

// Genres lists every accepted label in prompt order.
var Genres = []Genre{
	GenreWorldNews, GenreNationalNews, GenrePolitics, GenreTechnology, GenreBusiness,
	GenreSports, GenreHealth, GenreScience, GenreEntertainment, GenreGeneral,
}

// ParseGenre maps a free-form label onto the closed set, defaulting to General.
func ParseGenre(label string) Genre {
	for _, g := range Genres {
		if strings.EqualFold(string(g), strings.TrimSpace(label)) {
			return g
		}
	}
	return GenreGeneral
}

const (
	QuizCount          = 5
	AnswersPerQuestion = 3
)

// QuestionType tells which strategy produced a question.
type QuestionType string

const (
	QuestionAI      QuestionType = "ai_generated"
	QuestionDynamic QuestionType = "dynamic"
)

// Answer is one option of a quiz question.
type Answer struct {
	ID        string `json:"id"`
	Text      string `json:"answer_text"`
	IsCorrect bool   `json:"is_correct"`
}

// Quiz is one multiple-choice question.
type Quiz struct {
	ID           string       `json:"id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Answers      []Answer     `json:"answers"`
}

// FeatureSource records which generation strategy produced a FeatureSet.
type FeatureSource string

const (
	FeaturesPrimary  FeatureSource = "primary"
	FeaturesFallback FeatureSource = "fallback"
)

// FeatureSet is the genre plus exactly QuizCount quizzes.
type FeatureSet struct {
	Genre   Genre
	Quizzes []Quiz
	Source  FeatureSource
}

// TranslationPayload is one language variant. When IsAvailable is false no other
// field carries data.
type TranslationPayload struct {
	Headline       string `json:"headline,omitempty"`
	SimplifiedText string `json:"simplified_text,omitempty"`
	OriginalText   string `json:"original_text,omitempty"`
	Genre          string `json:"genre,omitempty"`
	Quizzes        []Quiz `json:"quizzes,omitempty"`
	IsAvailable    bool   `json:"is_available"`
}

// CloneQuizzes deep-copies quizzes so translated variants never alias the source.
func CloneQuizzes(src []Quiz) []Quiz {
	out := make([]Quiz, len(src))
	for i, q := range src {
		out[i] = q
		out[i].Answers = append([]Answer(nil), q.Answers...)
	}
	return out
}
