package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/model"
)

// CompanyListFilters narrows the company listing.
type CompanyListFilters struct {
	Status   string
	Branch   string
	Year     int
	CourseID string
}

// CompanyRepository is the company store contract.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	// Delete removes the company; its tasks go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *CompanyListFilters) ([]model.Company, error)
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo creates the GORM-backed CompanyRepository.
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("deadline ASC")
		}).
		Where("company_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", id).
		Delete(&model.Company{}).Error
}

func (r *companyRepo) List(ctx context.Context, filters *CompanyListFilters) ([]model.Company, error) {
	db := r.db.WithContext(ctx)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Branch != "" {
			db = db.Where("? = ANY(elig_branches)", filters.Branch)
		}
		if filters.Year != 0 {
			db = db.Where("? = ANY(elig_years)", filters.Year)
		}
		if filters.CourseID != "" {
			db = db.Where("elig_course_id = ?", filters.CourseID)
		}
	}

	var companies []model.Company
	err := db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("deadline ASC")
	}).
		Order("created_at DESC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
