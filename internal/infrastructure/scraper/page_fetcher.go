// Package scraper downloads article pages and keeps only their body paragraphs.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"NewsSimplifier/internal/ports"
)

const (
	articleParagraphMin  = 20
	fallbackParagraphMin = 30
)

var noiseClassWords = []string{"menu", "sidebar", "cookie", "popup", "newsletter", "sponsor"}

var boilerplatePhrases = []string{
	"published -",
	"comments have to be in english",
	"abide by our community guidelines",
	"migrated to a new commenting platform",
	"access their older comments",
	"vuukle",
	"copyright",
	"all rights reserved",
	"subscribe to our newsletter",
}

// PageFetcher implements ports.PageFetcher over plain HTTP.
type PageFetcher struct {
	client    *http.Client
	userAgent string
}

var _ ports.PageFetcher = (*PageFetcher)(nil)

// NewPageFetcher wires an HTTP client; client defaults to one with the given timeout.
func NewPageFetcher(client *http.Client, userAgent string, timeout time.Duration) *PageFetcher {
	if client == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &PageFetcher{client: client, userAgent: userAgent}
}

// Fetch returns the readable paragraphs of the page joined by spaces.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	doc, err := f.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return ExtractBody(doc), nil
}

func (f *PageFetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// ExtractBody strips page chrome and collects article paragraphs.
func ExtractBody(doc *goquery.Document) string {
	doc.Find("nav, footer, header, aside, script, style, noscript").Remove()
	doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, w := range noiseClassWords {
			if strings.Contains(class, w) {
				return true
			}
		}
		return false
	}).Remove()

	containers := doc.Find("article")
	if containers.Length() == 0 {
		containers = doc.Find(`[role="main"]`)
	}
	if containers.Length() == 0 {
		containers = doc.Find("main")
	}
	if containers.Length() > 0 {
		return paragraphs(containers, articleParagraphMin)
	}

	fallback := doc.Find("div#content").First()
	if fallback.Length() == 0 {
		fallback = doc.Find("div.article-body").First()
	}
	if fallback.Length() == 0 {
		fallback = doc.Find("body").First()
	}
	return paragraphs(fallback, fallbackParagraphMin)
}

func paragraphs(scope *goquery.Selection, minLen int) string {
	var parts []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if utf8.RuneCountInString(text) > minLen && !isBoilerplate(text) {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func isBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
