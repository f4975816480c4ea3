package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
)

// TaskService covers direct task management.
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) (*model.Task, error)
}

type taskService struct {
	repo     *repository.Repository
	notifier NotifierService
	logger   *zap.Logger
}

// NewTaskService creates the TaskService.
func NewTaskService(repo *repository.Repository, notifier NotifierService, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, notifier: notifier, logger: logger}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*model.Task, error) {
	company, err := s.repo.Company.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	task := &model.Task{
		CompanyID:   company.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		PPTLink:     req.PPTLink,
		FormLink:    req.FormLink,
		Status:      model.TaskStatusActive,
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("create task failed",
			zap.String("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	task.Company = company
	if err := s.notifier.TaskCreated(ctx, task); err != nil {
		s.logger.Warn("new task notification failed",
			zap.String("task_id", task.TaskID), zap.Error(err))
	}

	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil && !req.Deadline.Equal(task.Deadline) {
		// Moving the deadline re-arms the reminders for the new time.
		task.Deadline = *req.Deadline
		task.OneDayReminderSent = false
		task.SixHourReminderSent = false
	}
	if req.PPTLink != nil {
		task.PPTLink = *req.PPTLink
	}
	if req.FormLink != nil {
		task.FormLink = *req.FormLink
	}

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("update task failed", zap.String("task_id", id), zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Task.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if err := s.repo.Task.Delete(ctx, id); err != nil {
		s.logger.Error("delete task failed", zap.String("task_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) MarkCompleted(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Status == model.TaskStatusCompleted {
		return nil, ErrTaskAlreadyCompleted
	}

	task.Status = model.TaskStatusCompleted
	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("complete task failed", zap.String("task_id", id), zap.Error(err))
		return nil, err
	}
	return task, nil
}
