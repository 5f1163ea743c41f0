// Package scheduler runs the periodic maintenance jobs: listing cache
// warm-up and expired session cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer refreshes the cached job listing.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// SessionPurger deletes sessions that expired before now and returns their ids.
type SessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}

const DefaultPurgeSpec = "@every 15m"

// Scheduler wraps robfig/cron. A job with an empty spec is not registered.
type Scheduler struct {
	cron      *cron.Cron
	warmer    Warmer
	purger    SessionPurger
	warmSpec  string
	purgeSpec string
	onPurge   []func(sessionID string)
	logger    *log.Logger
	now       func() time.Time
}

// New builds a scheduler. onPurge hooks run for every purged session id.
func New(warmer Warmer, warmSpec string, purger SessionPurger, purgeSpec string, logger *log.Logger, onPurge ...func(sessionID string)) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		warmer:    warmer,
		purger:    purger,
		warmSpec:  warmSpec,
		purgeSpec: purgeSpec,
		onPurge:   onPurge,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the scheduler. The warm-up also runs
// once immediately so the first page load hits the cache.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.warmer != nil && s.warmSpec != "" {
		if _, err := s.cron.AddFunc(s.warmSpec, func() { s.RunWarm(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc warm %q: %w", s.warmSpec, err)
		}
		go s.RunWarm(ctx)
	}
	if s.purger != nil && s.purgeSpec != "" {
		if _, err := s.cron.AddFunc(s.purgeSpec, func() { s.RunPurge(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc purge %q: %w", s.purgeSpec, err)
		}
	}
	s.cron.Start()
	s.logger.Printf("[Scheduler] started, %d job(s)", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Println("[Scheduler] stopped")
}

func (s *Scheduler) RunWarm(ctx context.Context) {
	n, err := s.warmer.Warm(ctx)
	if err != nil {
		s.logger.Printf("[Scheduler] cache warm-up failed: %v", err)
		return
	}
	s.logger.Printf("[Scheduler] cache warmed with %d job(s)", n)
}

func (s *Scheduler) RunPurge(ctx context.Context) {
	ids, err := s.purger.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Printf("[Scheduler] session purge failed: %v", err)
		return
	}
	for _, id := range ids {
		for _, fn := range s.onPurge {
			fn(id)
		}
	}
	if len(ids) > 0 {
		s.logger.Printf("[Scheduler] purged %d expired session(s)", len(ids))
	}
}
