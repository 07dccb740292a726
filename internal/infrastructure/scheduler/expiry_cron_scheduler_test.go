package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/infrastructure/config"
)

// stubExpirer counts sweeps and signals each execution
type stubExpirer struct {
	count    int64
	err      error
	calls    atomic.Int32
	executed chan struct{}
}

func newStubExpirer(count int64, err error) *stubExpirer {
	return &stubExpirer{
		count:    count,
		err:      err,
		executed: make(chan struct{}, 10),
	}
}

func (s *stubExpirer) ExpireOverdueBookings(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	s.executed <- struct{}{}
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:           true,
		DailyRunHour:      0,
		DailyRunMinute:    0,
		MaxConcurrentJobs: 2,
		JobTimeout:        5 * time.Second,
	}
}

func waitForExecution(t *testing.T, expirer *stubExpirer) {
	t.Helper()
	select {
	case <-expirer.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("expiry sweep was not executed")
	}
}

func TestExpiryCronScheduler_StartRunsCatchUpSweep(t *testing.T) {
	expirer := newStubExpirer(4, nil)
	executor := NewExpiryJobExecutor(expirer, zap.NewNop())
	s := NewExpiryCronScheduler(testSchedulerConfig(), executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForExecution(t, expirer)

	assert.Eventually(t, func() bool {
		return executor.LastCancelledCount() == 4
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotNil(t, s.GetLastRunAt())
	assert.NotNil(t, s.GetNextRunAt())
}

func TestExpiryCronScheduler_TriggerManualRun(t *testing.T) {
	expirer := newStubExpirer(0, nil)
	executor := NewExpiryJobExecutor(expirer, zap.NewNop())
	s := NewExpiryCronScheduler(testSchedulerConfig(), executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForExecution(t, expirer) // catch-up sweep

	require.NoError(t, s.TriggerManualRun(context.Background()))
	waitForExecution(t, expirer)

	assert.GreaterOrEqual(t, expirer.calls.Load(), int32(2))
}

func TestExpiryCronScheduler_TriggerManualRunWhenStopped(t *testing.T) {
	expirer := newStubExpirer(0, nil)
	executor := NewExpiryJobExecutor(expirer, zap.NewNop())
	s := NewExpiryCronScheduler(testSchedulerConfig(), executor, zap.NewNop())

	err := s.TriggerManualRun(context.Background())

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestExpiryCronScheduler_SweepErrorDoesNotStopScheduler(t *testing.T) {
	expirer := newStubExpirer(0, errors.New("database unavailable"))
	executor := NewExpiryJobExecutor(expirer, zap.NewNop())
	s := NewExpiryCronScheduler(testSchedulerConfig(), executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForExecution(t, expirer)

	require.NoError(t, s.TriggerManualRun(context.Background()))
	waitForExecution(t, expirer)
}

func TestExpiryCronScheduler_ShouldRun(t *testing.T) {
	cfg := testSchedulerConfig()
	cfg.DailyRunHour = 2
	cfg.DailyRunMinute = 30
	executor := NewExpiryJobExecutor(newStubExpirer(0, nil), zap.NewNop())
	s := NewExpiryCronScheduler(cfg, executor, zap.NewNop())

	assert.True(t, s.shouldRun(time.Date(2026, 8, 29, 2, 30, 15, 0, time.Local)))
	assert.False(t, s.shouldRun(time.Date(2026, 8, 29, 2, 31, 0, 0, time.Local)))
	assert.False(t, s.shouldRun(time.Date(2026, 8, 29, 3, 30, 0, 0, time.Local)))
}

func TestExpiryCronScheduler_GetStatus(t *testing.T) {
	expirer := newStubExpirer(2, nil)
	executor := NewExpiryJobExecutor(expirer, zap.NewNop())
	s := NewExpiryCronScheduler(testSchedulerConfig(), executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	waitForExecution(t, expirer)

	status := s.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, true, status["is_running"])
	assert.Equal(t, 0, status["daily_run_hour"])
	assert.NotNil(t, status["next_run_at"])
}

func TestScheduler_SubmitJobWhenStopped(t *testing.T) {
	executor := NewExpiryJobExecutor(newStubExpirer(0, nil), zap.NewNop())
	s := NewScheduler(DefaultPoolConfig(), executor, zap.NewNop())

	err := s.SubmitJob(NewJob(JobTypeExpireOverdue, 1))

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}
