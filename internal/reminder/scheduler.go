package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the reminder every morning at 09:00.
const DefaultSchedule = "0 9 * * *"

// Scheduler runs a Job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	job      *Job
	logger   *slog.Logger
	schedule string
	timeout  time.Duration
}

// NewScheduler creates a scheduler for job. An empty schedule uses DefaultSchedule.
func NewScheduler(job *Job, logger *slog.Logger, schedule string) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		job:      job,
		logger:   logger,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start registers the reminder job and starts the cron scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		s.logger.Error("failed to schedule payment reminder job", "schedule", s.schedule, "error", err)
		return err
	}
	s.logger.Info("scheduled payment reminder job", "schedule", s.schedule)

	s.cron.Start()
	return nil
}

func (s *Scheduler) runOnce() {
	s.logger.Info("starting payment reminder job")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error("payment reminder job failed", "error", err)
		return
	}
	s.logger.Info("payment reminder job finished", "reminders", sent)
}

// Stop stops the scheduler. The returned context is done once a running job completes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
