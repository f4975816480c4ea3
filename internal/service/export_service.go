package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/repository"
)

// ExportService renders deadline calendars.
type ExportService interface {
	// DeadlineCalendar serializes the caller's upcoming task deadlines as an
	// iCalendar feed. Only tasks whose company eligibility the user matches
	// are included.
	DeadlineCalendar(ctx context.Context, userID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) DeadlineCalendar(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	tasks, err := s.repo.Task.ListActiveWithCompany(ctx, s.now())
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//JobNotification//Deadline Calendar//EN")
	cal.SetName("Placement Deadlines")

	for i := range tasks {
		task := &tasks[i]
		if task.Company == nil {
			continue
		}
		if !IsEligible(user, task.Company.Eligibility) {
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("task-%s@job-notification", task.TaskID))
		evt.SetDtStampTime(s.now().UTC())
		evt.SetStartAt(task.Deadline.UTC())
		evt.SetEndAt(task.Deadline.UTC())
		evt.SetSummary(fmt.Sprintf("%s: %s", task.Company.Name, task.Title))
		evt.SetDescription(task.Description)
		if task.FormLink != "" {
			evt.SetURL(task.FormLink)
		}
	}

	return cal.Serialize(), nil
}
