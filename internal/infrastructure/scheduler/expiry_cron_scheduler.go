package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/infrastructure/config"
)

// cronTickerInterval is the interval at which the cron scheduler checks for execution
const cronTickerInterval = 1 * time.Minute

// BookingExpirer is the expiry sweep the scheduler drives
type BookingExpirer interface {
	ExpireOverdueBookings(ctx context.Context) (int64, error)
}

// ExpiryJobExecutor runs the expiry sweep as a scheduler job
type ExpiryJobExecutor struct {
	expirer BookingExpirer
	logger  *zap.Logger

	mu            sync.Mutex
	lastCancelled int64
}

// NewExpiryJobExecutor creates a new expiry job executor
func NewExpiryJobExecutor(expirer BookingExpirer, logger *zap.Logger) *ExpiryJobExecutor {
	return &ExpiryJobExecutor{
		expirer: expirer,
		logger:  logger,
	}
}

// Execute runs the expiry sweep
func (e *ExpiryJobExecutor) Execute(ctx context.Context, job *Job) error {
	count, err := e.expirer.ExpireOverdueBookings(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.lastCancelled = count
	e.mu.Unlock()

	e.logger.Info("Expiry sweep finished",
		zap.String("job_id", job.ID.String()),
		zap.Int64("cancelled", count),
	)
	return nil
}

// LastCancelledCount returns the booking count of the most recent sweep
func (e *ExpiryJobExecutor) LastCancelledCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCancelled
}

// ExpiryCronScheduler triggers the daily booking expiry sweep. Overdue
// bookings are also swept once at startup so a restart never extends a
// missed deadline past the next daily run.
type ExpiryCronScheduler struct {
	config    config.SchedulerConfig
	executor  *ExpiryJobExecutor
	logger    *zap.Logger
	scheduler *Scheduler

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewExpiryCronScheduler creates a new cron-based expiry scheduler
func NewExpiryCronScheduler(cfg config.SchedulerConfig, executor *ExpiryJobExecutor, logger *zap.Logger) *ExpiryCronScheduler {
	// A failed sweep is not retried: the next daily run covers it
	poolConfig := PoolConfig{
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
		JobTimeout:        cfg.JobTimeout,
		RetryAttempts:     0,
		RetryDelay:        time.Minute,
	}
	return &ExpiryCronScheduler{
		config:    cfg,
		executor:  executor,
		logger:    logger,
		scheduler: NewScheduler(poolConfig, executor, logger),
	}
}

// Start starts the cron scheduler and runs an initial catch-up sweep
func (s *ExpiryCronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	if err := s.scheduler.Start(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	// Catch-up sweep for deadlines that passed while the server was down
	s.submitSweep()

	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("Expiry cron scheduler started",
		zap.Int("daily_run_hour", s.config.DailyRunHour),
		zap.Int("daily_run_minute", s.config.DailyRunMinute),
		zap.Timep("next_run_at", s.nextRunAt),
	)

	return nil
}

// Stop stops the cron scheduler
func (s *ExpiryCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := s.scheduler.Stop(ctx); err != nil {
			s.logger.Warn("Error stopping underlying scheduler", zap.Error(err))
		}
		s.logger.Info("Expiry cron scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Expiry cron scheduler stop timed out")
		return ctx.Err()
	}
}

// cronLoop runs the main cron loop
func (s *ExpiryCronScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.submitSweep()
				s.calculateNextRunTime()
			}
		}
	}
}

// shouldRun checks if the cron should run at the given time
func (s *ExpiryCronScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.config.DailyRunHour && now.Minute() == s.config.DailyRunMinute
}

// calculateNextRunTime calculates the next run time
func (s *ExpiryCronScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.DailyRunHour, s.config.DailyRunMinute, 0, 0, now.Location())

	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// submitSweep queues one expiry sweep job
func (s *ExpiryCronScheduler) submitSweep() {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	job := NewJob(JobTypeExpireOverdue, 0)
	if err := s.scheduler.SubmitJob(job); err != nil {
		s.logger.Error("Failed to submit expiry sweep job", zap.Error(err))
	}
}

// TriggerManualRun triggers an immediate expiry sweep
func (s *ExpiryCronScheduler) TriggerManualRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	s.submitSweep()
	return nil
}

// GetStatus returns the current status of the cron scheduler
func (s *ExpiryCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":          s.config.Enabled,
		"is_running":       s.isRunning,
		"daily_run_hour":   s.config.DailyRunHour,
		"daily_run_minute": s.config.DailyRunMinute,
		"last_run_at":      s.lastRunAt,
		"next_run_at":      s.nextRunAt,
		"last_cancelled":   s.executor.LastCancelledCount(),
	}
}

// GetNextRunAt returns when the next scheduled run will occur
func (s *ExpiryCronScheduler) GetNextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// GetLastRunAt returns when the last run occurred
func (s *ExpiryCronScheduler) GetLastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}
