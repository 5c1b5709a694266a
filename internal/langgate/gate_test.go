package langgate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubDetector struct {
	lang  string
	ok    bool
	calls int
}

func (s *stubDetector) Detect(_ context.Context, _ string) (string, bool) {
	s.calls++
	return s.lang, s.ok
}

func TestDetectScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		lang  string
		found bool
	}{
		{name: "latin", text: "Markets rally after rate decision", found: false},
		{name: "devanagari", text: "भारत में चुनाव", lang: "hi", found: true},
		{name: "cjk", text: "Report: 中国 economy", lang: "zh", found: true},
		{name: "arabic", text: "خبر عاجل", lang: "ar", found: true},
		{name: "cyrillic", text: "Новости дня", lang: "ru", found: true},
		{name: "beyond prefix", text: strings.Repeat("a", 10) + "Новости", found: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lang, found := DetectScript(tt.text, 10)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.lang, lang)
		})
	}
}

func TestCheckHeadline(t *testing.T) {
	t.Parallel()

	g := New("en", nil, nil)
	assert.True(t, g.CheckHeadline("Storm hits the coast", "Summary text").Accepted)
	assert.False(t, g.CheckHeadline("भारत में चुनाव").Accepted)
	assert.False(t, g.CheckHeadline("English headline", "सारांश").Accepted)
}

func TestCheckContentUsesDetector(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Le gouvernement a annoncé une réforme. ", 5)

	fr := &stubDetector{lang: "fr", ok: true}
	d := New("en", fr, nil).CheckContent(context.Background(), long)
	assert.False(t, d.Accepted)
	assert.Equal(t, "fr", d.Language)
	assert.Equal(t, 1, fr.calls)

	undetermined := &stubDetector{ok: false}
	assert.True(t, New("en", undetermined, nil).CheckContent(context.Background(), long).Accepted)

	en := &stubDetector{lang: "en", ok: true}
	assert.True(t, New("en", en, nil).CheckContent(context.Background(), long).Accepted)
}

func TestCheckContentShortTextSkipsDetector(t *testing.T) {
	t.Parallel()

	det := &stubDetector{lang: "fr", ok: true}
	d := New("en", det, nil).CheckContent(context.Background(), "short")
	assert.True(t, d.Accepted)
	assert.Equal(t, 0, det.calls)
}

func TestCheckContentScriptRejectsWithoutDetector(t *testing.T) {
	t.Parallel()

	det := &stubDetector{lang: "en", ok: true}
	text := "नई दिल्ली " + strings.Repeat("words ", 20)
	d := New("en", det, nil).CheckContent(context.Background(), text)
	assert.False(t, d.Accepted)
	assert.Equal(t, 0, det.calls)
}
