package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/logger"
)

// SubscriptionExpiryJob deactivates paid subscriptions whose expiry has
// passed so access checks stay consistent without waiting for user traffic.
type SubscriptionExpiryJob struct {
	repo     repositories.SubscriptionRepository
	interval time.Duration
	stop     chan struct{}
}

func NewSubscriptionExpiryJob(repo repositories.SubscriptionRepository, interval time.Duration) *SubscriptionExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SubscriptionExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SubscriptionExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting subscription expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "subscription expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "subscription expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SubscriptionExpiryJob) Stop() {
	close(j.stop)
}

func (j *SubscriptionExpiryJob) sweep(ctx context.Context) {
	n, err := j.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		logger.Error(ctx, "failed to deactivate expired subscriptions", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "deactivated expired subscriptions", zap.Int64("count", n))
	}
}
