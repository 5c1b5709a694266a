package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	trans "NewsSimplifier/internal/translate"
)

func TestGoogleClientTranslatePostsLongChunks(t *testing.T) {
	t.Parallel()

	chunk := strings.Repeat("a", 4800)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "want POST", http.StatusMethodNotAllowed)
			return
		}
		if len(r.URL.RawQuery) > 512 {
			http.Error(w, "text leaked into query", http.StatusRequestURITooLong)
			return
		}
		var body struct {
			Q      []string `json:"q"`
			Target string   `json:"target"`
			Source string   `json:"source"`
			Format string   `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if len(body.Q) != 1 || body.Q[0] != chunk || body.Target != "es" || body.Source != "en" || body.Format != "text" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"hola"}]}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewGoogleClient(context.Background(), "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	out, err := client.Translate(context.Background(), chunk, "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", out)
}

func TestGoogleClientRateLimitIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewGoogleClient(context.Background(), "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	_, err = client.Translate(context.Background(), "hello", "en", "fr")
	require.Error(t, err)
	assert.True(t, trans.IsRetryable(err))
}

func TestNewGoogleClientRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGoogleClient(context.Background(), "")
	assert.Error(t, err)
}

func TestDisabledIsNotRetryable(t *testing.T) {
	t.Parallel()

	_, err := Disabled{}.Translate(context.Background(), "x", "en", "es")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, trans.IsRetryable(err))
}
