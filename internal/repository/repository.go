package repository

import "gorm.io/gorm"

// Repository aggregates every store the services depend on.
type Repository struct {
	User         UserRepository
	Course       CourseRepository
	Company      CompanyRepository
	Task         TaskRepository
	Announcement AnnouncementRepository
}

// NewRepository builds the aggregate with GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		Company:      NewCompanyRepo(db),
		Task:         NewTaskRepo(db),
		Announcement: NewAnnouncementRepo(db),
	}
}
