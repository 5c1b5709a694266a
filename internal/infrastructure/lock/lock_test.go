package lock

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockIsExclusive(t *testing.T) {
	t.Parallel()

	l := NewLocal()
	release, ok, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "second acquire while held")

	release()
	release()

	release, ok, err = l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestRedisLockReportsConnectionErrors(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	_, ok, err := NewRedis(client, "news:lock", time.Second).TryAcquire(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
