package expiry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// adExpirer marks approved ads whose last approved booking has ended.
type adExpirer interface {
	ExpireAdsEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job is the nightly sweep that persists the expired status for ads.
// Every other content kind derives expiry at read time and needs no
// sweep.
type Job struct {
	ads    adExpirer
	now    func() time.Time
	logger *zap.Logger
}

func NewJob(ads adExpirer, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		ads:    ads,
		now:    time.Now,
		logger: logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.ads == nil {
		return nil
	}

	// Midnight boundary: an ad booked through yesterday is expired today.
	now := j.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := j.ads.ExpireAdsEndedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("expire ended ads: %w", err)
	}
	if rows > 0 {
		j.logger.Info("ad expiry sweep completed", zap.Int64("expired", rows))
	}

	return nil
}
