package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// TaskHandler serves the task endpoints and the deadline calendar export.
type TaskHandler struct {
	taskSvc   service.TaskService
	exportSvc service.ExportService
}

// NewTaskHandler creates the TaskHandler.
func NewTaskHandler(taskSvc service.TaskService, exportSvc service.ExportService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, exportSvc: exportSvc}
}

// Create creates a task and notifies eligible students.
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// GetByID returns one task with its company.
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	result, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 14001, "task not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update updates a task. Moving the deadline re-arms its reminders.
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.taskSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 14001, "task not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete removes a task.
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.NotFound(c, 14001, "task not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// MarkCompleted marks a task completed.
// POST /api/tasks/:id/complete
func (h *TaskHandler) MarkCompleted(c *gin.Context) {
	result, err := h.taskSvc.MarkCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.NotFound(c, 14001, "task not found")
		case errors.Is(err, service.ErrTaskAlreadyCompleted):
			response.Error(c, http.StatusConflict, 14002, "task already completed")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ExportCalendar streams the caller's upcoming deadlines as an iCalendar
// file.
// GET /api/tasks/calendar.ics
func (h *TaskHandler) ExportCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cal, err := h.exportSvc.DeadlineCalendar(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11007, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deadlines.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal))
}
