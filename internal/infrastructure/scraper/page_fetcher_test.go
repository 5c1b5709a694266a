package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><body>
<header><p>Site header navigation text that is long enough</p></header>
<nav><p>Home World Sport Business Technology Science</p></nav>
<article>
  <p>The council approved the new budget after a long debate.</p>
  <p>Short para.</p>
  <div class="newsletter-box"><p>Sign up for the daily briefing in your inbox now.</p></div>
  <p>Copyright 2026 Example Media. All rights reserved worldwide.</p>
  <p>Road repairs will start in the spring according to officials.</p>
</article>
<footer><p>Footer links and legal text that is long enough</p></footer>
</body></html>`

const fallbackPage = `<html><body>
<div id="content">
  <p>This paragraph sits in the content div and is long enough.</p>
  <p>Twenty-five chars exactly!</p>
</div>
</body></html>`

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractBodyPrefersArticle(t *testing.T) {
	t.Parallel()

	got := ExtractBody(docFrom(t, articlePage))
	assert.Equal(t,
		"The council approved the new budget after a long debate. Road repairs will start in the spring according to officials.",
		got)
}

func TestExtractBodyFallback(t *testing.T) {
	t.Parallel()

	got := ExtractBody(docFrom(t, fallbackPage))
	assert.Equal(t, "This paragraph sits in the content div and is long enough.", got)
}

func TestFetchOverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/story":
			if r.Header.Get("User-Agent") == "" {
				http.Error(w, "no agent", http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(articlePage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := NewPageFetcher(srv.Client(), "NewsSimplifierTest/1.0", time.Second)

	body, err := f.Fetch(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.Contains(t, body, "approved the new budget")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}
