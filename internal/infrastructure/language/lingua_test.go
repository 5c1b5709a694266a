package language

import (
	"context"
	"testing"

	"github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/assert"
)

func TestLinguaDetect(t *testing.T) {
	t.Parallel()

	d := NewLingua(lingua.English, lingua.French, lingua.German)

	lang, ok := d.Detect(context.Background(), "The government announced a new plan for public schools on Monday.")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	lang, ok = d.Detect(context.Background(), "Le gouvernement a annoncé un nouveau plan pour les écoles publiques lundi.")
	assert.True(t, ok)
	assert.Equal(t, "fr", lang)

	_, ok = d.Detect(context.Background(), "   ")
	assert.False(t, ok)
}

func TestNoopNeverDetermines(t *testing.T) {
	t.Parallel()

	_, ok := Noop{}.Detect(context.Background(), "anything")
	assert.False(t, ok)
}
