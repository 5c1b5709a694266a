package domain

import "time"

// FeedItem is a normalized syndication entry. Every optional text variant a feed
// may carry gets its own field so the rest of the pipeline never inspects raw entries.
type FeedItem struct {
	Link             string
	Title            string
	Description      string
	Summary          string
	Content          string
	ContentEncoded   string
	MediaDescription string
	ITunesSummary    string
	Subtitle         string
	Publisher        string
	PublishedAt      time.Time
}

// Feed is one fetched syndication document.
type Feed struct {
	Title string
	URL   string
	Items []FeedItem
}

// ExtractedContent is the merged plain text used as the pipeline's source of truth.
type ExtractedContent struct {
	Text          string
	Length        int
	FeedLength    int
	ScrapedLength int
}

// SimplificationAttempt is produced once per retry iteration.
type SimplificationAttempt struct {
	Attempt          int
	Text             string
	WordCount        int
	ReadabilityScore float64
}

// FactVerification reports how well a candidate is supported by its original.
type FactVerification struct {
	ConfidencePct   float64 `json:"confidence_pct"`
	MatchedEntities int     `json:"matched_entities_count"`
	FailureReason   *string `json:"failure_reason"`
	Passed          bool    `json:"-"`
}

// ProcessingStatus is the persisted quality verdict of a record.
type ProcessingStatus string

const (
	StatusPass ProcessingStatus = "PASS"
	StatusFail ProcessingStatus = "FAIL"
)

// OriginalArticle keeps the untouched source data alongside a record.
type OriginalArticle struct {
	SourceURL     string `json:"source_url"`
	PublisherName string `json:"publisher_name"`
	Headline      string `json:"headline"`
	RawText       string `json:"raw_text"`
	PublishedDate string `json:"published_date"`
}

// ArticleRecord is the document written to the article store, keyed by Original.SourceURL.
type ArticleRecord struct {
	ID                 string                        `json:"id"`
	Original           OriginalArticle               `json:"original"`
	SimplifiedHeadline string                        `json:"simplified_headline"`
	SimplifiedText     string                        `json:"simplified_text"`
	ReadabilityScore   float64                       `json:"readability_score"`
	WordCount          int                           `json:"word_count"`
	Genre              Genre                         `json:"genre,omitempty"`
	ProcessingStatus   ProcessingStatus              `json:"processing_status"`
	FactVerification   *FactVerification             `json:"fact_verification,omitempty"`
	Quizzes            []Quiz                        `json:"quizzes,omitempty"`
	Translations       map[string]TranslationPayload `json:"translations,omitempty"`
	CreatedAt          time.Time                     `json:"created_at"`
}

const (
	FailedHeadline = "Processing Failed"
	FailedBody     = "The AI pipeline could not generate a verifiable simplified version."
)
