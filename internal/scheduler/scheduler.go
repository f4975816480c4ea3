// Package scheduler runs the periodic deadline-reminder scan.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
	"github.com/tictac1213/JobNotification/internal/service"
)

// Scheduler periodically scans for tasks whose deadline enters the one-day or
// six-hour window and fires reminder notifications for them. A sent flag per
// threshold keeps each reminder at most-once per task even across restarts
// and overlapping windows.
type Scheduler struct {
	cfg      *config.SchedulerConfig
	tasks    repository.TaskRepository
	notifier service.NotifierService
	logger   *zap.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool

	// now is swappable for tests.
	now func() time.Time
}

// New creates a stopped Scheduler.
func New(cfg *config.SchedulerConfig, tasks repository.TaskRepository, notifier service.NotifierService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins the periodic scan. An immediate scan runs right away so a
// restart cannot miss reminders that came due while the process was down.
// Starting an already running scheduler is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %ds", int(s.cfg.CheckInterval.Seconds()))
	if _, err := c.AddFunc(spec, s.scan); err != nil {
		return fmt.Errorf("schedule reminder scan: %w", err)
	}

	s.cron = c
	s.running = true
	c.Start()

	go s.scan()

	s.logger.Info("reminder scheduler started",
		zap.Duration("interval", s.cfg.CheckInterval))
	return nil
}

// Stop halts the periodic scan and waits for an in-flight scan to finish.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.cron = nil
	s.running = false

	s.logger.Info("reminder scheduler stopped")
}

// Running reports whether the periodic scan is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TriggerReminders runs one scan synchronously, regardless of scheduler
// state. Admin endpoints use it to force a scan.
func (s *Scheduler) TriggerReminders(ctx context.Context) {
	s.CheckTaskReminders(ctx)
}

func (s *Scheduler) scan() {
	s.CheckTaskReminders(context.Background())
}

// CheckTaskReminders performs one full reminder scan: the one-day window
// first, then the six-hour window. A task entering both windows at once (a
// deadline under six hours away with neither flag set) gets both reminders
// in that order.
func (s *Scheduler) CheckTaskReminders(ctx context.Context) {
	now := s.now()

	oneDaySent := s.scanWindow(ctx, now, s.cfg.OneDayWindow, model.ReminderOneDay)
	sixHourSent := s.scanWindow(ctx, now, s.cfg.SixHourWindow, model.ReminderSixHour)

	if oneDaySent > 0 || sixHourSent > 0 {
		s.logger.Info("reminder scan finished",
			zap.Int("one_day_sent", oneDaySent),
			zap.Int("six_hour_sent", sixHourSent))
	}
}

// scanWindow handles one threshold: find unsent tasks with a deadline inside
// [now, now+window], notify for each, then flip the flag. Returns how many
// tasks were fully processed.
func (s *Scheduler) scanWindow(ctx context.Context, now time.Time, window time.Duration, threshold string) int {
	tasks, err := s.tasks.FindByDeadlineWindow(ctx, now, now.Add(window), threshold)
	if err != nil {
		s.logger.Error("reminder window query failed",
			zap.String("threshold", threshold), zap.Error(err))
		return 0
	}

	sent := 0
	for i := range tasks {
		if s.processTask(ctx, &tasks[i], threshold) {
			sent++
		}
	}
	return sent
}

// processTask sends one task's reminder and marks its flag. Any failure
// leaves the flag unset so the next scan retries; a panic in the send path
// is contained to this task.
func (s *Scheduler) processTask(ctx context.Context, task *model.Task, threshold string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reminder processing panicked",
				zap.String("task_id", task.TaskID),
				zap.String("threshold", threshold),
				zap.Any("panic", r))
			ok = false
		}
	}()

	if task.Company == nil {
		// Orphaned task: skip without marking so it is retried once the
		// data is repaired.
		s.logger.Warn("task has no company, skipping reminder",
			zap.String("task_id", task.TaskID))
		return false
	}

	if err := s.notifier.TaskReminder(ctx, task, task.Company, threshold); err != nil {
		s.logger.Error("reminder notification failed",
			zap.String("task_id", task.TaskID),
			zap.String("threshold", threshold),
			zap.Error(err))
		return false
	}

	marked, err := s.tasks.MarkReminderSent(ctx, task.TaskID, threshold)
	if err != nil {
		s.logger.Error("mark reminder sent failed",
			zap.String("task_id", task.TaskID),
			zap.String("threshold", threshold),
			zap.Error(err))
		return false
	}
	if !marked {
		// A concurrent scan won the flag; that send already covered it.
		s.logger.Debug("reminder flag already set",
			zap.String("task_id", task.TaskID),
			zap.String("threshold", threshold))
		return false
	}

	return true
}
