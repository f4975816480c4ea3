package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/model"
)

// ── Mock TaskRepository ──

type mockTaskStore struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskStore) add(task *model.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.TaskID] = task
}

func (m *mockTaskStore) Create(_ context.Context, task *model.Task) error {
	m.add(task)
	return nil
}

func (m *mockTaskStore) GetByID(_ context.Context, id string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, errors.New("not found")
}

func (m *mockTaskStore) Update(_ context.Context, task *model.Task) error {
	m.add(task)
	return nil
}

func (m *mockTaskStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) ListByCompany(_ context.Context, companyID string) ([]model.Task, error) {
	return nil, nil
}

func (m *mockTaskStore) ListActiveWithCompany(_ context.Context, from time.Time) ([]model.Task, error) {
	return nil, nil
}

func (m *mockTaskStore) FindByDeadlineWindow(_ context.Context, start, end time.Time, threshold string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Task
	for _, t := range m.tasks {
		if t.Deadline.Before(start) || t.Deadline.After(end) {
			continue
		}
		if t.ReminderSent(threshold) {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Deadline.Before(result[j].Deadline) })
	return result, nil
}

func (m *mockTaskStore) MarkReminderSent(_ context.Context, taskID, threshold string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return false, nil
	}
	switch threshold {
	case model.ReminderOneDay:
		if t.OneDayReminderSent {
			return false, nil
		}
		t.OneDayReminderSent = true
	case model.ReminderSixHour:
		if t.SixHourReminderSent {
			return false, nil
		}
		t.SixHourReminderSent = true
	}
	return true, nil
}

// ── Mock NotifierService ──

type reminderCall struct {
	TaskID    string
	Threshold string
}

type mockNotifier struct {
	mu       sync.Mutex
	calls    []reminderCall
	failFor  map[string]bool
	panicFor map[string]bool
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		failFor:  make(map[string]bool),
		panicFor: make(map[string]bool),
	}
}

func (m *mockNotifier) CompanyCreated(_ context.Context, _ *model.Company) error { return nil }
func (m *mockNotifier) CompanyUpdated(_ context.Context, _, _ *model.Company) error {
	return nil
}
func (m *mockNotifier) TaskCreated(_ context.Context, _ *model.Task) error { return nil }
func (m *mockNotifier) StudentApproved(_ context.Context, _ *model.User)   {}

func (m *mockNotifier) TaskReminder(_ context.Context, task *model.Task, _ *model.Company, threshold string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicFor[task.TaskID] {
		panic("notifier exploded")
	}
	if m.failFor[task.TaskID] {
		return errors.New("smtp unavailable")
	}
	m.calls = append(m.calls, reminderCall{TaskID: task.TaskID, Threshold: threshold})
	return nil
}

func (m *mockNotifier) callsFor(taskID string) []reminderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []reminderCall
	for _, c := range m.calls {
		if c.TaskID == taskID {
			result = append(result, c)
		}
	}
	return result
}

// ── Fixtures ──

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testSchedulerConfig() *config.SchedulerConfig {
	return &config.SchedulerConfig{
		CheckInterval: 30 * time.Minute,
		OneDayWindow:  24 * time.Hour,
		SixHourWindow: 6 * time.Hour,
		CohortCap:     100,
	}
}

func newTestScheduler(t *testing.T) (*Scheduler, *mockTaskStore, *mockNotifier) {
	t.Helper()
	store := newMockTaskStore()
	notifier := newMockNotifier()
	s := New(testSchedulerConfig(), store, notifier, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s, store, notifier
}

func taskDueIn(id string, d time.Duration) *model.Task {
	return &model.Task{
		TaskID:    id,
		CompanyID: "c1",
		Title:     "Task " + id,
		Deadline:  testNow.Add(d),
		Status:    model.TaskStatusActive,
		Company:   &model.Company{CompanyID: "c1", Name: "Acme Corp"},
	}
}

// ── Tests ──

func TestScanSendsOneDayReminderInsideWindow(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 20*time.Hour))
	store.add(taskDueIn("t2", 48*time.Hour)) // outside both windows

	s.CheckTaskReminders(context.Background())

	calls := notifier.callsFor("t1")
	if len(calls) != 1 || calls[0].Threshold != model.ReminderOneDay {
		t.Fatalf("t1 calls = %v, want one oneDay reminder", calls)
	}
	if got, _ := store.GetByID(context.Background(), "t1"); !got.OneDayReminderSent {
		t.Error("oneDay flag not set after successful send")
	}
	if got, _ := store.GetByID(context.Background(), "t1"); got.SixHourReminderSent {
		t.Error("sixHour flag set for a deadline outside the six-hour window")
	}

	if calls := notifier.callsFor("t2"); len(calls) != 0 {
		t.Errorf("t2 outside window received %v", calls)
	}
}

func TestScanIsIdempotentAcrossRuns(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 20*time.Hour))

	s.CheckTaskReminders(context.Background())
	s.CheckTaskReminders(context.Background())
	s.CheckTaskReminders(context.Background())

	if calls := notifier.callsFor("t1"); len(calls) != 1 {
		t.Errorf("overlapping scans produced %d reminders, want 1", len(calls))
	}
}

// A deadline under six hours away with neither flag set gets both reminders
// in the same scan, one-day first.
func TestTaskInBothWindowsGetsBothReminders(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 5*time.Hour))

	s.CheckTaskReminders(context.Background())

	calls := notifier.callsFor("t1")
	if len(calls) != 2 {
		t.Fatalf("got %d reminders, want 2", len(calls))
	}
	if calls[0].Threshold != model.ReminderOneDay || calls[1].Threshold != model.ReminderSixHour {
		t.Errorf("reminder order = %v, want oneDay then sixHour", calls)
	}

	got, _ := store.GetByID(context.Background(), "t1")
	if !got.OneDayReminderSent || !got.SixHourReminderSent {
		t.Error("both flags must be set after the scan")
	}
}

func TestFailedSendRetriesNextScan(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 20*time.Hour))
	notifier.failFor["t1"] = true

	s.CheckTaskReminders(context.Background())

	if got, _ := store.GetByID(context.Background(), "t1"); got.OneDayReminderSent {
		t.Fatal("flag set even though the send failed")
	}

	// Transport recovers; the next scan picks the task up again.
	notifier.failFor["t1"] = false
	s.CheckTaskReminders(context.Background())

	if calls := notifier.callsFor("t1"); len(calls) != 1 {
		t.Errorf("recovered task got %d reminders, want 1", len(calls))
	}
	if got, _ := store.GetByID(context.Background(), "t1"); !got.OneDayReminderSent {
		t.Error("flag not set after the successful retry")
	}
}

func TestOrphanTaskSkippedWithoutMarking(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	orphan := taskDueIn("t1", 20*time.Hour)
	orphan.Company = nil
	store.add(orphan)

	s.CheckTaskReminders(context.Background())

	if calls := notifier.callsFor("t1"); len(calls) != 0 {
		t.Errorf("orphan task got %v", calls)
	}
	if got, _ := store.GetByID(context.Background(), "t1"); got.OneDayReminderSent {
		t.Error("orphan task flag set, must stay unset for retry after repair")
	}
}

func TestPanicInOneTaskDoesNotStopOthers(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 10*time.Hour))
	store.add(taskDueIn("t2", 20*time.Hour))
	notifier.panicFor["t1"] = true

	s.CheckTaskReminders(context.Background())

	if calls := notifier.callsFor("t2"); len(calls) != 1 {
		t.Errorf("task after the panicking one got %d reminders, want 1", len(calls))
	}
	if got, _ := store.GetByID(context.Background(), "t1"); got.OneDayReminderSent {
		t.Error("panicking task must not be marked sent")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	if s.Running() {
		t.Fatal("new scheduler reports running")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Running() {
		t.Error("started scheduler reports stopped")
	}

	// Second Start is a no-op, not an error.
	if err := s.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	s.Stop()
	if s.Running() {
		t.Error("stopped scheduler reports running")
	}

	// Second Stop is a no-op.
	s.Stop()
}

func TestTriggerRemindersRunsWhileStopped(t *testing.T) {
	s, store, notifier := newTestScheduler(t)

	store.add(taskDueIn("t1", 20*time.Hour))

	// Never started; a manual trigger still scans.
	s.TriggerReminders(context.Background())

	if calls := notifier.callsFor("t1"); len(calls) != 1 {
		t.Errorf("manual trigger produced %d reminders, want 1", len(calls))
	}
}
