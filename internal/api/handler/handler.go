package handler

import (
	"github.com/tictac1213/JobNotification/internal/scheduler"
	"github.com/tictac1213/JobNotification/internal/service"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth         *AuthHandler
	Admin        *AdminHandler
	Company      *CompanyHandler
	Task         *TaskHandler
	Course       *CourseHandler
	Announcement *AnnouncementHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Admin:        NewAdminHandler(svc.Admin, sched),
		Company:      NewCompanyHandler(svc.Company),
		Task:         NewTaskHandler(svc.Task, svc.Export),
		Course:       NewCourseHandler(svc.Course),
		Announcement: NewAnnouncementHandler(svc.Announcement),
	}
}
