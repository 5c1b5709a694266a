package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRecordKeepsZeroScores(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(ArticleRecord{ProcessingStatus: StatusPass})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "readability_score")
	assert.Contains(t, doc, "word_count")
	assert.EqualValues(t, 0, doc["readability_score"])
}
