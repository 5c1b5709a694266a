package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSimplifier/internal/domain"
)

func textOfLen(word string, n int) string {
	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString(word)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String()[:n])
}

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text is trimmed", in: "  already plain  ", want: "already plain"},
		{name: "tags stripped with spacing", in: "<p>First<b>bold</b></p><p>Second\n\n line</p>", want: "First bold Second line"},
		{name: "scripts removed", in: "<div>Keep<script>var x = 1;</script></div>", want: "Keep"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanHTML(tt.in))
		})
	}
}

func TestFeedTextDeduplicatesIdenticalVariants(t *testing.T) {
	t.Parallel()

	item := domain.FeedItem{
		Description: "<p>Same story text.</p>",
		Summary:     "Same story text.",
		Subtitle:    "A subtitle",
	}
	assert.Equal(t, "Same story text. A subtitle", FeedText(item))
}

func TestExtractCombinesSubstantialFeedAndScrape(t *testing.T) {
	t.Parallel()

	feed := textOfLen("feed", 300)
	scraped := textOfLen("page", 600)

	out, err := New(100).Extract(domain.FeedItem{Description: feed}, scraped)
	require.NoError(t, err)
	assert.Contains(t, out.Text, feed)
	assert.Contains(t, out.Text, scraped)
	assert.True(t, strings.HasPrefix(out.Text, feed), "feed metadata comes first")
}

func TestExtractShortFeedLongScrape(t *testing.T) {
	t.Parallel()

	feed := textOfLen("feed", 50)
	scraped := textOfLen("page", 600)

	out, err := New(100).Extract(domain.FeedItem{Summary: feed}, scraped)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out.Length, 600)
	assert.Contains(t, out.Text, scraped)
}

func TestExtractFeedPrimaryWithShortScrapeAppended(t *testing.T) {
	t.Parallel()

	feed := textOfLen("feed", 250)
	out, err := New(100).Extract(domain.FeedItem{Description: feed}, "short scraped tail")
	require.NoError(t, err)
	assert.Equal(t, feed+" short scraped tail", out.Text)
}

func TestExtractRejectsInsufficientContent(t *testing.T) {
	t.Parallel()

	out, err := New(100).Extract(domain.FeedItem{Description: "Tiny."}, "")
	require.ErrorIs(t, err, ErrInsufficientContent)
	assert.Less(t, out.Length, 100)
}

func TestExtractFallbackConcatenatesAllSources(t *testing.T) {
	t.Parallel()

	item := domain.FeedItem{
		Description: textOfLen("desc", 40),
		Content:     textOfLen("body", 40),
	}
	out, err := New(100).Extract(item, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out.Length, 100)
	assert.Contains(t, out.Text, item.Content)
}
