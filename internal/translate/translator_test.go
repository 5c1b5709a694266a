package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"NewsSimplifier/internal/domain"
)

// fakeClient prefixes text with the target language; failures are scripted per language.
type fakeClient struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string][]error
	block    bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}, failures: map[string][]error{}}
}

func (f *fakeClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.calls[target]++
	var err error
	if queue := f.failures[target]; len(queue) > 0 {
		err = queue[0]
		f.failures[target] = queue[1:]
	}
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s>%s]%s", source, target, text), nil
}

func (f *fakeClient) callCount(lang string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[lang]
}

func testConfig() Config {
	return Config{ChunkSize: 4800, MaxAttempts: 3, Backoff: time.Millisecond, CallTimeout: time.Second}
}

func sampleContent() Content {
	return Content{
		Headline:       "Headline",
		SimplifiedText: "Simple text.",
		OriginalText:   "Original text.",
		Genre:          "Politics",
		Quizzes: []domain.Quiz{{
			ID:           "q1",
			QuestionText: "What happened?",
			Answers: []domain.Answer{
				{ID: "a1", Text: "Right", IsCorrect: true},
				{ID: "a2", Text: "Wrong"},
				{ID: "a3", Text: ""},
			},
		}},
	}
}

func TestTranslateLanguageMapsPositions(t *testing.T) {
	t.Parallel()

	content := sampleContent()
	payload, err := New(newFakeClient(), testConfig(), nil).TranslateLanguage(context.Background(), content, "hi")
	require.NoError(t, err)

	assert.True(t, payload.IsAvailable)
	assert.Equal(t, "[en>hi]Headline", payload.Headline)
	assert.Equal(t, "[en>hi]Simple text.", payload.SimplifiedText)
	assert.Equal(t, "[en>hi]Original text.", payload.OriginalText)
	assert.Equal(t, "[en>hi]Politics", payload.Genre)
	require.Len(t, payload.Quizzes, 1)
	assert.Equal(t, "[en>hi]What happened?", payload.Quizzes[0].QuestionText)
	assert.Equal(t, "[en>hi]Right", payload.Quizzes[0].Answers[0].Text)
	assert.True(t, payload.Quizzes[0].Answers[0].IsCorrect)
	assert.Equal(t, "", payload.Quizzes[0].Answers[2].Text, "empty strings stay empty")

	assert.Equal(t, "Right", content.Quizzes[0].Answers[0].Text, "source quizzes untouched")
}

func TestTranslateAllIsolatesFailures(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.failures["ta"] = []error{errors.New("invalid credentials")}

	out := New(client, testConfig(), nil).TranslateAll(context.Background(), sampleContent(), []string{"hi", "ta"})
	require.Len(t, out, 2)

	assert.True(t, out["hi"].IsAvailable)
	assert.Equal(t, "[en>hi]Headline", out["hi"].Headline)

	assert.Equal(t, domain.TranslationPayload{IsAvailable: false}, out["ta"])
	assert.Equal(t, 1, client.callCount("ta"), "non-retryable error abandons immediately")
}

func TestTranslateRetriesRateLimits(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.failures["hi"] = []error{
		&googleapi.Error{Code: 429, Message: "rate limited"},
		errors.New("Request exception can happen: try another translator"),
	}

	payload, err := New(client, testConfig(), nil).TranslateLanguage(context.Background(), sampleContent(), "hi")
	require.NoError(t, err)
	assert.True(t, payload.IsAvailable)
}

func TestTranslateAbandonsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	limit := &googleapi.Error{Code: 429}
	client.failures["hi"] = []error{limit, limit, limit}

	payload, err := New(client, testConfig(), nil).TranslateLanguage(context.Background(), sampleContent(), "hi")
	require.ErrorIs(t, err, ErrLanguageAbandoned)
	assert.False(t, payload.IsAvailable)
	assert.Equal(t, 3, client.callCount("hi"))
}

func TestTranslateCancellationAbandonsLanguage(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.block = true

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	out := New(client, testConfig(), nil).TranslateAll(ctx, sampleContent(), []string{"hi", "ta"})
	assert.False(t, out["hi"].IsAvailable)
	assert.False(t, out["ta"].IsAvailable)
}

func TestChunks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"abc"}, Chunks("abc", 10))
	assert.Equal(t, []string{"ab", "cd", "e"}, Chunks("abcde", 2))
	assert.Equal(t, []string{"नम", "स्"}, Chunks("नमस्", 2), "splits on runes")

	long := strings.Repeat("x", 9700)
	chunks := Chunks(long, 4800)
	require.Len(t, chunks, 3)
	assert.Equal(t, long, strings.Join(chunks, ""))
}

func TestLongTextTranslatedPerChunk(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	content := sampleContent()
	content.OriginalText = strings.Repeat("y", 5000)

	payload, err := New(client, testConfig(), nil).TranslateLanguage(context.Background(), content, "hi")
	require.NoError(t, err)
	assert.Equal(t, "[en>hi]"+strings.Repeat("y", 4800)+"[en>hi]"+strings.Repeat("y", 200), payload.OriginalText)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(fmt.Errorf("call: %w", &googleapi.Error{Code: 429})))
	assert.True(t, IsRetryable(errors.New("Too Many Requests")))
	assert.True(t, IsRetryable(errors.New("text length exceeds limit")))
	assert.False(t, IsRetryable(&googleapi.Error{Code: 403}))
	assert.False(t, IsRetryable(nil))
}
