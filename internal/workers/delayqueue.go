package workers

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type delayedTask struct {
	at    time.Time
	fn    func(ctx context.Context)
	index int
}

type taskHeap []*delayedTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *taskHeap) Push(x interface{}) { t := x.(*delayedTask); t.index = len(*h); *h = append(*h, t) }
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// DelayQueue runs tasks at their deadline from a single goroutine. Tasks are
// in-process only: they are lost on restart, which is acceptable because the
// periodic sweep re-derives the same expirations from the database.
type DelayQueue struct {
	mu     sync.Mutex
	tasks  taskHeap
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func NewDelayQueue(logger *zap.Logger) *DelayQueue {
	return &DelayQueue{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Schedule enqueues fn to run at the given time. A deadline already in the
// past runs on the next loop iteration.
func (q *DelayQueue) Schedule(at time.Time, fn func(ctx context.Context)) {
	q.mu.Lock()
	heap.Push(&q.tasks, &delayedTask{at: at, fn: fn})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *DelayQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Len()
}

// Run blocks until ctx is cancelled or Stop is called.
func (q *DelayQueue) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		q.mu.Lock()
		var wait time.Duration
		if q.tasks.Len() == 0 {
			wait = time.Hour
		} else {
			wait = time.Until(q.tasks[0].at)
		}
		q.mu.Unlock()

		if wait <= 0 {
			q.runDue(ctx)
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-q.done:
			return
		case <-q.wake:
		case <-timer.C:
			q.runDue(ctx)
		}
	}
}

func (q *DelayQueue) runDue(ctx context.Context) {
	now := time.Now()
	for {
		q.mu.Lock()
		if q.tasks.Len() == 0 || q.tasks[0].at.After(now) {
			q.mu.Unlock()
			return
		}
		task := heap.Pop(&q.tasks).(*delayedTask)
		q.mu.Unlock()

		func() {
			defer func() {
				if r := recover(); r != nil {
					q.logger.Error("delayed task panicked", zap.Any("panic", r))
				}
			}()
			task.fn(ctx)
		}()
	}
}

func (q *DelayQueue) Stop() {
	q.once.Do(func() { close(q.done) })
}
