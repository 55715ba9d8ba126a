package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"petromart/internal/infra"
)

type PromotionSweeper interface {
	SweepFeatured(ctx context.Context, now int64) (int64, error)
	SweepHotDeals(ctx context.Context, now int64) (int64, error)
}

type SubscriptionSweeper interface {
	ExpireDue(ctx context.Context, now int64) (int, error)
}

// Sweeper periodically expires whatever the delayed tasks missed: featured
// placements past their finish time, hot deals past their window and
// subscriptions past ends_at. Every pass is idempotent, so overlapping with
// a delayed task or a previous pass is harmless.
type Sweeper struct {
	promotions    PromotionSweeper
	subscriptions SubscriptionSweeper
	metrics       *infra.Metrics
	interval      time.Duration
	logger        *zap.Logger

	done chan struct{}
}

func NewSweeper(
	promotions PromotionSweeper,
	subscriptions SubscriptionSweeper,
	metrics *infra.Metrics,
	interval time.Duration,
	logger *zap.Logger,
) *Sweeper {
	return &Sweeper{
		promotions:    promotions,
		subscriptions: subscriptions,
		metrics:       metrics,
		interval:      interval,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("sweep pass failed", zap.Error(err))
			}
		}
	}
}

// RunOnce executes the three sweeps concurrently and returns the first
// error. The sweeps touch disjoint tables, so they never contend.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	now := time.Now().Unix()
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		start := time.Now()
		count, err := s.promotions.SweepFeatured(groupCtx, now)
		s.metrics.RecordSweepDuration("featured", time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.Info("featured placements rotated out", zap.Int64("count", count))
		}
		return nil
	})

	group.Go(func() error {
		start := time.Now()
		count, err := s.promotions.SweepHotDeals(groupCtx, now)
		s.metrics.RecordSweepDuration("hot_deals", time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.Info("hot deals deactivated", zap.Int64("count", count))
		}
		return nil
	})

	group.Go(func() error {
		start := time.Now()
		count, err := s.subscriptions.ExpireDue(groupCtx, now)
		s.metrics.RecordSweepDuration("subscriptions", time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.Info("subscriptions expired", zap.Int("count", count))
		}
		return nil
	})

	return group.Wait()
}

func (s *Sweeper) Stop() {
	close(s.done)
}
