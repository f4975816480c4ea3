package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tictac1213/JobNotification/internal/model"
)

// StudentListFilters narrows the admin student listing.
type StudentListFilters struct {
	Status   string
	Branch   string
	Year     int
	CourseID string
}

// UserRepository is the user store contract.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByScholarNo(ctx context.Context, scholarNo string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ListStudents(ctx context.Context, filters *StudentListFilters) ([]model.User, error)
	CountStudents(ctx context.Context, status string) (int64, error)

	// FindEligible returns Active students and admins matching the
	// eligibility constraints, ordered by registration time ascending.
	// Empty branch/year sets and a nil MinCGPA mean no restriction.
	FindEligible(ctx context.Context, elig model.Eligibility) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates the GORM-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByScholarNo(ctx context.Context, scholarNo string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("scholar_no = ?", scholarNo).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) ListStudents(ctx context.Context, filters *StudentListFilters) ([]model.User, error) {
	db := r.db.WithContext(ctx).
		Where("role = ?", model.RoleStudent)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Branch != "" {
			db = db.Where("branch = ?", filters.Branch)
		}
		if filters.Year != 0 {
			db = db.Where("year = ?", filters.Year)
		}
		if filters.CourseID != "" {
			db = db.Where("course_id = ?", filters.CourseID)
		}
	}

	var users []model.User
	err := db.Preload("Course").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) CountStudents(ctx context.Context, status string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ?", model.RoleStudent)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepo) FindEligible(ctx context.Context, elig model.Eligibility) ([]model.User, error) {
	db := r.db.WithContext(ctx).
		Where("status = ?", model.UserStatusActive).
		Where("role IN ?", []string{model.RoleStudent, model.RoleAdmin})

	if len(elig.Branches) > 0 {
		db = db.Where("branch IN ?", []string(elig.Branches))
	}
	if len(elig.Years) > 0 {
		db = db.Where("year IN ?", []int(elig.Years))
	}
	if elig.MinCGPA != nil {
		db = db.Where("cgpa >= ?", *elig.MinCGPA)
	}

	var users []model.User
	err := db.Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
