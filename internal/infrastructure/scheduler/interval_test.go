package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(10 * time.Millisecond)
	var runs atomic.Int32

	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(1) }))
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Stop(context.Background()))
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestIntervalSchedulerStartTwiceIsNoop(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	var runs atomic.Int32
	job := func(time.Time) { runs.Add(1) }

	require.NoError(t, s.Start(context.Background(), job))
	require.NoError(t, s.Start(context.Background(), job))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, int32(1), runs.Load())
}

func TestIntervalSchedulerStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewIntervalScheduler(5 * time.Millisecond)
	var runs atomic.Int32

	require.NoError(t, s.Start(ctx, func(time.Time) { runs.Add(1) }))
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, s.Stop(context.Background()))
}

func TestIntervalDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, NewIntervalScheduler(0).Interval())
	assert.NoError(t, NewIntervalScheduler(time.Second).Stop(context.Background()))
}
