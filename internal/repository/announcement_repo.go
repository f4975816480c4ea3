package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/model"
)

// AnnouncementListFilters narrows the announcement listing.
type AnnouncementListFilters struct {
	Branch   string
	Year     int
	CourseID string
}

// AnnouncementRepository is the announcement store contract.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *AnnouncementListFilters) ([]model.Announcement, error)
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo creates the GORM-backed AnnouncementRepository.
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var announcement model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("announcement_id = ?", id).
		First(&announcement).Error
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepo) Update(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&model.Announcement{}).Error
}

func (r *announcementRepo) List(ctx context.Context, filters *AnnouncementListFilters) ([]model.Announcement, error) {
	db := r.db.WithContext(ctx)

	if filters != nil {
		if filters.Branch != "" {
			db = db.Where("? = ANY(branches)", filters.Branch)
		}
		if filters.Year != 0 {
			db = db.Where("? = ANY(years)", filters.Year)
		}
		if filters.CourseID != "" {
			db = db.Where("course_id = ?", filters.CourseID)
		}
	}

	var announcements []model.Announcement
	err := db.Preload("Course").
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}
