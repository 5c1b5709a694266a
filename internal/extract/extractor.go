// Package extract turns a feed entry and an optional scraped page body into one
// normalized plain-text blob.
package extract

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"NewsSimplifier/internal/domain"
)

// ErrInsufficientContent is returned when no combination of sources reaches the minimum length.
var ErrInsufficientContent = errors.New("insufficient content")

const (
	authoritativeScrapeLen = 500
	substantialFeedLen     = 200
	minFallbackSourceLen   = 5
	defaultMinLength       = 100
)

var whitespace = regexp.MustCompile(`\s+`)

// Extractor merges feed-supplied text variants with scraped page text.
type Extractor struct {
	minLength int
}

// New builds an extractor; minLength defaults to 100 characters.
func New(minLength int) *Extractor {
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	return &Extractor{minLength: minLength}
}

// CleanHTML strips markup and collapses whitespace. Plain text is only trimmed.
func CleanHTML(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "<") || !strings.Contains(raw, ">") {
		return strings.TrimSpace(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapse(raw)
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		collectText(s, &parts)
	})
	return collapse(strings.Join(parts, " "))
}

// collectText walks nodes so adjacent elements never glue words together.
func collectText(s *goquery.Selection, parts *[]string) {
	if goquery.NodeName(s) == "#text" {
		if t := strings.TrimSpace(s.Text()); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		collectText(child, parts)
	})
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// FeedText cleans every text-bearing field of an item and joins the unique ones in
// priority order.
func FeedText(item domain.FeedItem) string {
	return strings.Join(uniqueNonEmpty(cleanedSources(item)), " ")
}

// cleanedSources returns cleaned fields in merge priority order.
func cleanedSources(item domain.FeedItem) []string {
	return []string{
		CleanHTML(item.Description),
		CleanHTML(item.ContentEncoded),
		CleanHTML(item.Summary),
		CleanHTML(item.Content),
		CleanHTML(item.MediaDescription),
		CleanHTML(item.ITunesSummary),
		CleanHTML(item.Subtitle),
	}
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Extract merges scraped text with the feed-supplied variants.
func (e *Extractor) Extract(item domain.FeedItem, scraped string) (domain.ExtractedContent, error) {
	scraped = strings.TrimSpace(scraped)
	sources := cleanedSources(item)
	feedText := strings.Join(uniqueNonEmpty(sources), " ")

	text := merge(feedText, scraped)

	if runeLen(text) < e.minLength {
		all := append([]string{feedText, scraped}, sources[3], sources[0], sources[2], sources[6], sources[1], sources[4], sources[5])
		var parts []string
		for _, s := range all {
			if runeLen(s) > minFallbackSourceLen {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			text = strings.Join(parts, " ")
		}
	}

	out := domain.ExtractedContent{
		Text:          text,
		Length:        runeLen(text),
		FeedLength:    runeLen(feedText),
		ScrapedLength: runeLen(scraped),
	}
	if out.Length < e.minLength {
		return out, ErrInsufficientContent
	}
	return out, nil
}

func merge(feedText, scraped string) string {
	switch {
	case runeLen(scraped) > authoritativeScrapeLen:
		if feedText != "" {
			return feedText + " " + scraped
		}
		return scraped
	case runeLen(feedText) > substantialFeedLen:
		if scraped != "" {
			return feedText + " " + scraped
		}
		return feedText
	default:
		return strings.TrimSpace(feedText + " " + scraped)
	}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
