package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
)

func newTestCompanyService(t *testing.T) (CompanyService, *repository.Repository, *mockMailer) {
	t.Helper()
	repo := newTestRepo()
	mail := newMockMailer()
	notifier := NewNotifierService(testConfig(), repo, mail, testLogger())
	svc := NewCompanyService(repo, notifier, testLogger())
	return svc, repo, mail
}

func TestCreateCompanyNotifiesAudience(t *testing.T) {
	svc, repo, mail := newTestCompanyService(t)

	repo.User.Create(context.Background(), activeStudent("u1", "cse@test.edu", "CSE", 3, 8.0, timeNowFixture()))
	repo.User.Create(context.Background(), activeStudent("u2", "me@test.edu", "ME", 3, 8.0, timeNowFixture()))

	company, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{
		Name:         "Acme Corp",
		Role:         "SDE",
		Compensation: "12 LPA",
		Eligibility:  dto.EligibilityRequest{Branches: []string{"CSE"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if company.Status != model.CompanyStatusActive {
		t.Errorf("new company status = %q, want Active", company.Status)
	}

	if got := mail.sentTo("cse@test.edu"); got != 1 {
		t.Errorf("eligible student got %d emails, want 1", got)
	}
	if got := mail.sentTo("me@test.edu"); got != 0 {
		t.Errorf("ineligible student got %d emails, want 0", got)
	}
}

func TestCreateCompanySucceedsWhenMailFails(t *testing.T) {
	svc, repo, mail := newTestCompanyService(t)

	repo.User.Create(context.Background(), activeStudent("u1", "s@test.edu", "CSE", 3, 8.0, timeNowFixture()))
	mail.failAll = true

	company, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{
		Name:         "Acme Corp",
		Role:         "SDE",
		Compensation: "12 LPA",
	})
	if err != nil {
		t.Fatalf("Create must not fail on mail errors: %v", err)
	}
	if _, err := repo.Company.GetByID(context.Background(), company.CompanyID); err != nil {
		t.Errorf("company not persisted: %v", err)
	}
}

func TestUpdateCompanyOnlyMeaningfulChangesNotify(t *testing.T) {
	svc, repo, mail := newTestCompanyService(t)

	repo.User.Create(context.Background(), activeStudent("u1", "s@test.edu", "CSE", 3, 8.0, timeNowFixture()))

	company, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{
		Name:         "Acme Corp",
		Role:         "SDE",
		Compensation: "12 LPA",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	baseline := mail.total()

	// Empty update: nothing changed, nothing sent.
	if _, err := svc.Update(context.Background(), company.CompanyID, &dto.UpdateCompanyRequest{}); err != nil {
		t.Fatalf("empty Update: %v", err)
	}
	if mail.total() != baseline {
		t.Errorf("no-op update sent %d emails", mail.total()-baseline)
	}

	newRole := "SDE II"
	if _, err := svc.Update(context.Background(), company.CompanyID, &dto.UpdateCompanyRequest{Role: &newRole}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if mail.total() != baseline+1 {
		t.Errorf("meaningful update sent %d emails, want 1", mail.total()-baseline)
	}
}

func TestDeleteCompanyNotFound(t *testing.T) {
	svc, _, _ := newTestCompanyService(t)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("delete missing company error = %v, want ErrCompanyNotFound", err)
	}
}

func TestAddTaskNotifiesEligibleStudents(t *testing.T) {
	svc, repo, mail := newTestCompanyService(t)

	repo.User.Create(context.Background(), activeStudent("u1", "cse@test.edu", "CSE", 3, 8.0, timeNowFixture()))
	repo.User.Create(context.Background(), activeStudent("u2", "ece@test.edu", "ECE", 3, 8.0, timeNowFixture()))

	company := &model.Company{
		Name:        "Acme Corp",
		Role:        "SDE",
		Eligibility: model.Eligibility{Branches: model.StringArray{"CSE"}},
	}
	repo.Company.Create(context.Background(), company)

	task, err := svc.AddTask(context.Background(), company.CompanyID, &dto.AddCompanyTaskRequest{
		Title:       "Online Assessment",
		Description: "90 minute test",
		Deadline:    timeNowFixture().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Status != model.TaskStatusActive {
		t.Errorf("new task status = %q, want Active", task.Status)
	}
	if task.OneDayReminderSent || task.SixHourReminderSent {
		t.Error("new task must start with both reminder flags unset")
	}

	if got := mail.sentTo("cse@test.edu"); got != 1 {
		t.Errorf("eligible student got %d emails, want 1", got)
	}
	if got := mail.sentTo("ece@test.edu"); got != 0 {
		t.Errorf("ineligible student got %d emails, want 0", got)
	}
}

func TestAddTaskUnknownCompany(t *testing.T) {
	svc, _, _ := newTestCompanyService(t)

	_, err := svc.AddTask(context.Background(), "missing", &dto.AddCompanyTaskRequest{
		Title:       "OA",
		Description: "test",
		Deadline:    timeNowFixture(),
	})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("AddTask error = %v, want ErrCompanyNotFound", err)
	}
}
