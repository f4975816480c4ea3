package service

import (
	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/repository"
	"github.com/tictac1213/JobNotification/pkg/jwt"
	"github.com/tictac1213/JobNotification/pkg/mailer"
	"github.com/tictac1213/JobNotification/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth         AuthService
	Admin        AdminService
	Company      CompanyService
	Task         TaskService
	Course       CourseService
	Announcement AnnouncementService
	Export       ExportService
	Notifier     NotifierService
}

// NewService wires every service with its dependencies.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	m mailer.Mailer,
	logger *zap.Logger,
) *Service {
	notifier := NewNotifierService(cfg, repo, m, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		Admin:        NewAdminService(repo, notifier, logger),
		Company:      NewCompanyService(repo, notifier, logger),
		Task:         NewTaskService(repo, notifier, logger),
		Course:       NewCourseService(repo, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Export:       NewExportService(repo, logger),
		Notifier:     notifier,
	}
}
