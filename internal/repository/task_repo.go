package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/model"
)

// TaskRepository is the task store contract.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyID string) ([]model.Task, error)
	ListActiveWithCompany(ctx context.Context, from time.Time) ([]model.Task, error)

	// FindByDeadlineWindow returns tasks whose deadline falls in
	// [start, end] and whose sent flag for the threshold is still false,
	// with the owning company preloaded.
	FindByDeadlineWindow(ctx context.Context, start, end time.Time, threshold string) ([]model.Task, error)

	// MarkReminderSent flips the threshold's flag with a conditional
	// update. It reports whether this call performed the false→true
	// transition, so overlapping scans cannot double-mark.
	MarkReminderSent(ctx context.Context, taskID, threshold string) (bool, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo creates the GORM-backed TaskRepository.
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.Task{}).Error
}

func (r *taskRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ListActiveWithCompany(ctx context.Context, from time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", model.TaskStatusActive).
		Where("deadline >= ?", from).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// flagColumn maps a reminder threshold to its flag column.
func flagColumn(threshold string) (string, error) {
	switch threshold {
	case model.ReminderOneDay:
		return "one_day_reminder_sent", nil
	case model.ReminderSixHour:
		return "six_hour_reminder_sent", nil
	default:
		return "", fmt.Errorf("unknown reminder threshold %q", threshold)
	}
}

func (r *taskRepo) FindByDeadlineWindow(ctx context.Context, start, end time.Time, threshold string) ([]model.Task, error) {
	column, err := flagColumn(threshold)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	err = r.db.WithContext(ctx).
		Preload("Company").
		Where("deadline >= ? AND deadline <= ?", start, end).
		Where(column+" = ?", false).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) MarkReminderSent(ctx context.Context, taskID, threshold string) (bool, error) {
	column, err := flagColumn(threshold)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ?", taskID).
		Where(column+" = ?", false).
		Update(column, true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
