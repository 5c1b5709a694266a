// Package feed adapts RSS/Atom documents into domain feed items.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/ports"
)

// Source fetches one syndication URL through gofeed.
type Source struct {
	name    string
	url     string
	parser  *gofeed.Parser
	timeout time.Duration
}

var _ ports.FeedSource = (*Source)(nil)

// NewSource builds a feed source; client may be nil.
func NewSource(name, url, userAgent string, timeout time.Duration, client *http.Client) *Source {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	if client != nil {
		parser.Client = client
	}
	if name == "" {
		name = url
	}
	return &Source{name: name, url: url, parser: parser, timeout: timeout}
}

func (s *Source) Name() string { return s.name }
func (s *Source) URL() string  { return s.url }

// Fetch downloads and normalizes the feed.
func (s *Source) Fetch(ctx context.Context) (domain.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parsed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	out := domain.Feed{Title: parsed.Title, URL: s.url, Items: make([]domain.FeedItem, 0, len(parsed.Items))}
	for _, it := range parsed.Items {
		if it == nil {
			continue
		}
		out.Items = append(out.Items, toItem(it, parsed.Title))
	}
	return out, nil
}

func toItem(it *gofeed.Item, feedTitle string) domain.FeedItem {
	item := domain.FeedItem{
		Link:             strings.TrimSpace(it.Link),
		Title:            strings.TrimSpace(it.Title),
		Description:      it.Description,
		Content:          it.Content,
		ContentEncoded:   extensionValue(it.Extensions, "content", "encoded"),
		MediaDescription: mediaDescription(it.Extensions),
		Publisher:        feedTitle,
	}
	if it.ITunesExt != nil {
		item.ITunesSummary = it.ITunesExt.Summary
		item.Subtitle = it.ITunesExt.Subtitle
	}
	if item.Subtitle == "" {
		item.Subtitle = extensionValue(it.Extensions, "media", "subTitle")
	}
	if dc := it.DublinCoreExt; dc != nil {
		if len(dc.Publisher) > 0 {
			item.Publisher = dc.Publisher[0]
		}
		// gofeed folds <summary> into Description; dc:description is the remaining distinct summary.
		if len(dc.Description) > 0 && dc.Description[0] != item.Description {
			item.Summary = dc.Description[0]
		}
	}
	if item.Link == "" {
		item.Link = strings.TrimSpace(it.GUID)
	}
	if it.PublishedParsed != nil {
		item.PublishedAt = *it.PublishedParsed
	} else if it.UpdatedParsed != nil {
		item.PublishedAt = *it.UpdatedParsed
	}
	return item
}

func extensionValue(exts ext.Extensions, namespace, name string) string {
	for _, e := range exts[namespace][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// mediaDescription finds media:description at the top level or nested in media:group/media:content.
func mediaDescription(exts ext.Extensions) string {
	if v := extensionValue(exts, "media", "description"); v != "" {
		return v
	}
	for _, parent := range []string{"group", "content"} {
		for _, e := range exts["media"][parent] {
			if v := childValue(e, "description"); v != "" {
				return v
			}
		}
	}
	return ""
}

func childValue(e ext.Extension, name string) string {
	for _, c := range e.Children[name] {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	for _, children := range e.Children {
		for _, c := range children {
			if v := childValue(c, name); v != "" {
				return v
			}
		}
	}
	return ""
}
