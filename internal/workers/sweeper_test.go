package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petromart/internal/infra"
)

type fakePromotionSweeper struct {
	featured atomic.Int64
	deals    atomic.Int64
	err      error
}

func (f *fakePromotionSweeper) SweepFeatured(context.Context, int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.featured.Add(1), nil
}

func (f *fakePromotionSweeper) SweepHotDeals(context.Context, int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.deals.Add(1), nil
}

type fakeSubscriptionSweeper struct {
	calls atomic.Int32
}

func (f *fakeSubscriptionSweeper) ExpireDue(context.Context, int64) (int, error) {
	return int(f.calls.Add(1)), nil
}

func TestRunOnceRunsAllSweeps(t *testing.T) {
	promotions := &fakePromotionSweeper{}
	subscriptions := &fakeSubscriptionSweeper{}
	sweeper := NewSweeper(promotions, subscriptions,
		infra.NewMetrics(prometheus.NewRegistry()), time.Minute, zap.NewNop())

	require.NoError(t, sweeper.RunOnce(context.Background()))
	assert.EqualValues(t, 1, promotions.featured.Load())
	assert.EqualValues(t, 1, promotions.deals.Load())
	assert.EqualValues(t, 1, subscriptions.calls.Load())
}

func TestRunOnceSurfacesErrors(t *testing.T) {
	boom := errors.New("boom")
	promotions := &fakePromotionSweeper{err: boom}
	subscriptions := &fakeSubscriptionSweeper{}
	sweeper := NewSweeper(promotions, subscriptions,
		infra.NewMetrics(prometheus.NewRegistry()), time.Minute, zap.NewNop())

	assert.ErrorIs(t, sweeper.RunOnce(context.Background()), boom)
}

func TestRunTicksUntilStopped(t *testing.T) {
	promotions := &fakePromotionSweeper{}
	subscriptions := &fakeSubscriptionSweeper{}
	sweeper := NewSweeper(promotions, subscriptions,
		infra.NewMetrics(prometheus.NewRegistry()), 20*time.Millisecond, zap.NewNop())

	go sweeper.Run(context.Background())
	assert.Eventually(t, func() bool { return subscriptions.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	sweeper.Stop()
}
