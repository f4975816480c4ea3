package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tictac1213/JobNotification/internal/model"
)

func TestDeadlineCalendarIncludesOnlyEligibleTasks(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, testLogger()).(*exportService)
	svc.now = timeNowFixture

	user := activeStudent("u1", "s@test.edu", "CSE", 3, 8.0, timeNowFixture())
	repo.User.Create(context.Background(), user)

	open := &model.Company{CompanyID: "c1", Name: "Acme Corp"}
	restricted := &model.Company{
		CompanyID:   "c2",
		Name:        "Mech Only",
		Eligibility: model.Eligibility{Branches: model.StringArray{"ME"}},
	}
	repo.Company.Create(context.Background(), open)
	repo.Company.Create(context.Background(), restricted)

	repo.Task.Create(context.Background(), &model.Task{
		TaskID: "t1", CompanyID: "c1", Title: "Open OA",
		Deadline: timeNowFixture().Add(48 * time.Hour),
		Status:   model.TaskStatusActive,
		Company:  open,
	})
	repo.Task.Create(context.Background(), &model.Task{
		TaskID: "t2", CompanyID: "c2", Title: "Mech OA",
		Deadline: timeNowFixture().Add(48 * time.Hour),
		Status:   model.TaskStatusActive,
		Company:  restricted,
	})
	repo.Task.Create(context.Background(), &model.Task{
		TaskID: "t3", CompanyID: "c1", Title: "Past OA",
		Deadline: timeNowFixture().Add(-time.Hour),
		Status:   model.TaskStatusActive,
		Company:  open,
	})

	cal, err := svc.DeadlineCalendar(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DeadlineCalendar: %v", err)
	}

	if !strings.Contains(cal, "BEGIN:VCALENDAR") {
		t.Error("output is not an iCalendar document")
	}
	if !strings.Contains(cal, "Open OA") {
		t.Error("eligible task missing from calendar")
	}
	if strings.Contains(cal, "Mech OA") {
		t.Error("ineligible task leaked into calendar")
	}
	if strings.Contains(cal, "Past OA") {
		t.Error("past-deadline task leaked into calendar")
	}
}

func TestDeadlineCalendarUnknownUser(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, testLogger())

	if _, err := svc.DeadlineCalendar(context.Background(), "missing"); err != ErrUserNotFound {
		t.Errorf("DeadlineCalendar error = %v, want ErrUserNotFound", err)
	}
}
