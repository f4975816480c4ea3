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

var ErrCourseExists = errors.New("course already exists")

// CourseService manages the degree-program catalog.
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates the CourseService.
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	existing, err := s.repo.Course.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Name == req.Name {
			return nil, ErrCourseExists
		}
	}

	course := &model.Course{
		Name:            req.Name,
		Duration:        req.Duration,
		AllowedBranches: model.StringArray(req.AllowedBranches),
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	return s.repo.Course.List(ctx)
}
