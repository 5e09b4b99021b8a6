// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/receipt-split/backend/config"
	"github.com/receipt-split/backend/internal/application/adapter"
)

// RateLimitCleaner drops expired rate limiter entries.
type RateLimitCleaner interface {
	Cleanup()
}

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron        *cron.Cron
	cfg         config.SchedulerConfig
	emailQueue  adapter.EmailQueueRepository
	rateLimiter RateLimitCleaner
	now         func() time.Time
}

// NewScheduler creates a scheduler with every maintenance job registered.
// emailQueue and rateLimiter may be nil, which skips their job.
func NewScheduler(cfg config.SchedulerConfig, emailQueue adapter.EmailQueueRepository, rateLimiter RateLimitCleaner) *Scheduler {
	s := &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		cfg:         cfg,
		emailQueue:  emailQueue,
		rateLimiter: rateLimiter,
		now:         func() time.Time { return time.Now().UTC() },
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	if s.emailQueue != nil {
		if _, err := s.cron.AddFunc(s.cfg.EmailPurgeSchedule, s.PurgeSentEmails); err != nil {
			slog.Error("Failed to register PurgeSentEmails job", "error", err)
		}
	}

	if s.rateLimiter != nil {
		if _, err := s.cron.AddFunc(s.cfg.RateLimiterSchedule, s.rateLimiter.Cleanup); err != nil {
			slog.Error("Failed to register rate limiter cleanup job", "error", err)
		}
	}

	slog.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// PurgeSentEmails deletes sent email jobs older than the retention period.
func (s *Scheduler) PurgeSentEmails() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := s.now().Add(-s.cfg.EmailRetention)
	deleted, err := s.emailQueue.PurgeSent(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to purge sent emails", "error", err)
		return
	}
	slog.Info("Purged sent emails", "deleted", deleted, "cutoff", cutoff)
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
