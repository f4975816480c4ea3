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

var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementService manages scoped broadcast messages.
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest) (*model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	List(ctx context.Context, req *dto.AnnouncementListRequest) ([]model.Announcement, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService creates the AnnouncementService.
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest) (*model.Announcement, error) {
	if req.CourseID != nil {
		if _, err := s.repo.Course.GetByID(ctx, *req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
	}

	announcement := &model.Announcement{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		Branches:    model.StringArray(req.Branches),
		Years:       model.IntArray(req.Years),
	}
	if err := s.repo.Announcement.Create(ctx, announcement); err != nil {
		s.logger.Error("create announcement failed", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) List(ctx context.Context, req *dto.AnnouncementListRequest) ([]model.Announcement, error) {
	return s.repo.Announcement.List(ctx, &repository.AnnouncementListFilters{
		Branch:   req.Branch,
		Year:     req.Year,
		CourseID: req.CourseID,
	})
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*model.Announcement, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Description != nil {
		announcement.Description = *req.Description
	}
	if req.CourseID != nil {
		if _, err := s.repo.Course.GetByID(ctx, *req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
		announcement.CourseID = req.CourseID
	}
	if req.Branches != nil {
		announcement.Branches = model.StringArray(req.Branches)
	}
	if req.Years != nil {
		announcement.Years = model.IntArray(req.Years)
	}

	if err := s.repo.Announcement.Update(ctx, announcement); err != nil {
		s.logger.Error("update announcement failed", zap.String("announcement_id", id), zap.Error(err))
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Announcement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("delete announcement failed", zap.String("announcement_id", id), zap.Error(err))
		return err
	}
	return nil
}
