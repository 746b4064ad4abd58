package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/robfig/cron/v3"
)

// lockKey guards the reconciliation pass. A pass that outlives its lock
// TTL loses the guard; the TTL is twice the interval so that only a
// badly stuck pass can overlap.
const lockKey = "sync:lock"

type locker interface {
	SetNX(ctx context.Context, key, value string, expiry time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Scheduler triggers reconciliation passes on a fixed interval. A Redis
// lock keeps passes from overlapping, including across replicas.
type Scheduler struct {
	cron     *cron.Cron
	syncer   *Syncer
	locker   locker
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler creates a new sync scheduler
func NewScheduler(syncer *Syncer, locker locker, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		syncer:   syncer,
		locker:   locker,
		interval: interval,
		log:      log,
	}
}

// Start begins triggering passes every interval
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.runOnce); err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}

	s.cron.Start()
	s.log.Info("sync scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("sync scheduler stopped")
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*s.interval)
	defer cancel()

	acquired, err := s.locker.SetNX(ctx, lockKey, "1", 2*s.interval)
	if err != nil {
		s.log.Error("failed to acquire sync lock", "error", err)
		return
	}
	if !acquired {
		s.log.Debug("sync pass already running, skipping trigger")
		return
	}
	defer func() {
		if err := s.locker.Delete(context.Background(), lockKey); err != nil {
			s.log.Warn("failed to release sync lock", "error", err)
		}
	}()

	if _, err := s.syncer.Run(ctx); err != nil {
		// Source-level failures are fatal to the pass only; the store is
		// untouched and the next trigger retries.
		s.log.Error("sync pass failed", "error", err)
	}
}
