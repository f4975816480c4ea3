package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/scheduler"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// AdminHandler serves the admin endpoints.
type AdminHandler struct {
	adminSvc service.AdminService
	sched    *scheduler.Scheduler
}

// NewAdminHandler creates the AdminHandler.
func NewAdminHandler(adminSvc service.AdminService, sched *scheduler.Scheduler) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, sched: sched}
}

// ListPending lists students awaiting approval.
// GET /api/admin/students/pending
func (h *AdminHandler) ListPending(c *gin.Context) {
	result, err := h.adminSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListStudents lists students with optional filters.
// GET /api/admin/students
func (h *AdminHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.adminSvc.ListStudents(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Approve activates a pending student account.
// POST /api/admin/students/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	result, err := h.adminSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeStudentError(c, err)
		return
	}
	response.OK(c, result)
}

// Reject marks a pending student account rejected.
// POST /api/admin/students/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	result, err := h.adminSvc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeStudentError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *AdminHandler) writeStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "student not found")
	case errors.Is(err, service.ErrNotAStudent):
		response.BadRequest(c, 12002, "user is not a student")
	case errors.Is(err, service.ErrAlreadyProcessed):
		response.Error(c, http.StatusConflict, 12003, "student already processed")
	default:
		response.InternalError(c)
	}
}

// DashboardStats returns student counts for the admin dashboard.
// GET /api/admin/dashboard
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	result, err := h.adminSvc.DashboardStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ImportStudents bulk-creates active students from an uploaded Excel file.
// POST /api/admin/students/import
func (h *AdminHandler) ImportStudents(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "missing file upload")
		return
	}
	defer file.Close()

	result, err := h.adminSvc.ImportStudents(c.Request.Context(), file)
	if err != nil {
		response.BadRequest(c, 12004, err.Error())
		return
	}
	response.OK(c, result)
}

// TriggerReminders forces one reminder scan outside the schedule.
// POST /api/admin/reminders/trigger
func (h *AdminHandler) TriggerReminders(c *gin.Context) {
	h.sched.TriggerReminders(c.Request.Context())
	response.OK(c, gin.H{"triggered": true})
}
