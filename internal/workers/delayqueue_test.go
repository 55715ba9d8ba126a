package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDelayQueueRunsDueTasks(t *testing.T) {
	queue := NewDelayQueue(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx)
	defer queue.Stop()

	var fired atomic.Int32
	queue.Schedule(time.Now().Add(30*time.Millisecond), func(context.Context) {
		fired.Add(1)
	})
	queue.Schedule(time.Now().Add(60*time.Millisecond), func(context.Context) {
		fired.Add(1)
	})

	assert.Eventually(t, func() bool { return fired.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, queue.Len())
}

func TestDelayQueuePastDeadlineRunsImmediately(t *testing.T) {
	queue := NewDelayQueue(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx)
	defer queue.Stop()

	var fired atomic.Bool
	queue.Schedule(time.Now().Add(-time.Minute), func(context.Context) {
		fired.Store(true)
	})

	assert.Eventually(t, func() bool { return fired.Load() }, 2*time.Second, 10*time.Millisecond)
}

func TestDelayQueueSurvivesPanickingTask(t *testing.T) {
	queue := NewDelayQueue(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx)
	defer queue.Stop()

	queue.Schedule(time.Now(), func(context.Context) { panic("boom") })

	var fired atomic.Bool
	queue.Schedule(time.Now().Add(20*time.Millisecond), func(context.Context) {
		fired.Store(true)
	})

	assert.Eventually(t, func() bool { return fired.Load() }, 2*time.Second, 10*time.Millisecond)
}
