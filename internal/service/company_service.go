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

var ErrCompanyNotFound = errors.New("company not found")

// CompanyService covers company postings and their tasks.
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*model.Company, error)
	GetByID(ctx context.Context, id string) (*model.Company, error)
	List(ctx context.Context, req *dto.CompanyListRequest) ([]model.Company, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*model.Company, error)
	Delete(ctx context.Context, id string) error
	AddTask(ctx context.Context, companyID string, req *dto.AddCompanyTaskRequest) (*model.Task, error)
	ListTasks(ctx context.Context, companyID string) ([]model.Task, error)
}

type companyService struct {
	repo     *repository.Repository
	notifier NotifierService
	logger   *zap.Logger
}

// NewCompanyService creates the CompanyService.
func NewCompanyService(repo *repository.Repository, notifier NotifierService, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, notifier: notifier, logger: logger}
}

func toEligibility(req *dto.EligibilityRequest) model.Eligibility {
	if req == nil {
		return model.Eligibility{}
	}
	return model.Eligibility{
		CourseID: req.CourseID,
		Branches: model.StringArray(req.Branches),
		Years:    model.IntArray(req.Years),
		MinCGPA:  req.MinCGPA,
	}
}

func toDocuments(reqs []dto.DocumentRequest) model.DocumentList {
	docs := make(model.DocumentList, 0, len(reqs))
	for _, d := range reqs {
		docs = append(docs, model.Document{Name: d.Name, URL: d.URL})
	}
	return docs
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*model.Company, error) {
	company := &model.Company{
		Name:         req.Name,
		Role:         req.Role,
		Description:  req.Description,
		Status:       model.CompanyStatusActive,
		Compensation: req.Compensation,
		Eligibility:  toEligibility(&req.Eligibility),
		Documents:    toDocuments(req.Documents),
	}

	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("create company failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	// Notification failure never rolls back the posting.
	if err := s.notifier.CompanyCreated(ctx, company); err != nil {
		s.logger.Warn("new company notification failed",
			zap.String("company_id", company.CompanyID), zap.Error(err))
	}

	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*model.Company, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) List(ctx context.Context, req *dto.CompanyListRequest) ([]model.Company, error) {
	return s.repo.Company.List(ctx, &repository.CompanyListFilters{
		Status:   req.Status,
		Branch:   req.Branch,
		Year:     req.Year,
		CourseID: req.CourseID,
	})
}

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*model.Company, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	before := *company

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Role != nil {
		company.Role = *req.Role
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Status != nil {
		company.Status = *req.Status
	}
	if req.Compensation != nil {
		company.Compensation = *req.Compensation
	}
	if req.Eligibility != nil {
		company.Eligibility = toEligibility(req.Eligibility)
	}
	if req.Documents != nil {
		company.Documents = toDocuments(req.Documents)
	}

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("update company failed", zap.String("company_id", id), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.CompanyUpdated(ctx, &before, company); err != nil {
		s.logger.Warn("company update notification failed",
			zap.String("company_id", id), zap.Error(err))
	}

	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Company.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if err := s.repo.Company.Delete(ctx, id); err != nil {
		s.logger.Error("delete company failed", zap.String("company_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *companyService) AddTask(ctx context.Context, companyID string, req *dto.AddCompanyTaskRequest) (*model.Task, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
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
			zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	task.Company = company
	if err := s.notifier.TaskCreated(ctx, task); err != nil {
		s.logger.Warn("new task notification failed",
			zap.String("task_id", task.TaskID), zap.Error(err))
	}

	return task, nil
}

func (s *companyService) ListTasks(ctx context.Context, companyID string) ([]model.Task, error) {
	if _, err := s.repo.Company.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return s.repo.Task.ListByCompany(ctx, companyID)
}
