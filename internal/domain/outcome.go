package domain

import (
	"fmt"
	"strings"
)

// OutcomeStatus is the terminal classification of one processed feed entry.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "SUCCESS"
	OutcomeFail    OutcomeStatus = "FAIL"
	OutcomeSkipped OutcomeStatus = "SKIPPED"
	OutcomeError   OutcomeStatus = "ERROR"
)

// Skip and failure reasons shared by the orchestrator and its summary.
const (
	ReasonNonTargetLanguage   = "non-target-language"
	ReasonInsufficientContent = "insufficient content"
	ReasonAlreadyIngested     = "already ingested"
	ReasonSourceExcluded      = "source excluded"
	ReasonMissingLink         = "missing link"
	ReasonMaxRetries          = "FAIL_MAX_RETRIES"
)

// Outcome is emitted exactly once per attempted entry.
type Outcome struct {
	Status   OutcomeStatus
	Reason   string
	Link     string
	Headline string
	Record   *ArticleRecord
}

// BatchSummary collects every outcome of one orchestration run.
type BatchSummary struct {
	Outcomes     []Outcome
	Counts       map[OutcomeStatus]int
	AlreadyKnown int
	Processed    int
}

// NewBatchSummary returns a summary with all counters initialised.
func NewBatchSummary() BatchSummary {
	return BatchSummary{Counts: map[OutcomeStatus]int{
		OutcomeSuccess: 0,
		OutcomeFail:    0,
		OutcomeSkipped: 0,
		OutcomeError:   0,
	}}
}

// Add records an outcome. SUCCESS, FAIL and ERROR count as processed.
func (b *BatchSummary) Add(o Outcome) {
	if b.Counts == nil {
		*b = NewBatchSummary()
	}
	b.Outcomes = append(b.Outcomes, o)
	b.Counts[o.Status]++
	if o.Status != OutcomeSkipped {
		b.Processed++
	}
	if o.Status == OutcomeSkipped && o.Reason == ReasonAlreadyIngested {
		b.AlreadyKnown++
	}
}

// String renders a short human-readable digest of the run.
func (b BatchSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ingestion run: success=%d fail=%d skipped=%d error=%d (already known %d)\n",
		b.Counts[OutcomeSuccess], b.Counts[OutcomeFail], b.Counts[OutcomeSkipped], b.Counts[OutcomeError], b.AlreadyKnown)
	for _, o := range b.Outcomes {
		if o.Status == OutcomeSkipped && o.Reason == ReasonAlreadyIngested {
			continue
		}
		fmt.Fprintf(&sb, "- [%s] %s", o.Status, truncate(o.Headline, 60))
		if o.Reason != "" {
			fmt.Fprintf(&sb, " (%s)", o.Reason)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
