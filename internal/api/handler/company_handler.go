package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// CompanyHandler serves the company endpoints.
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler creates the CompanyHandler.
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create creates a company posting and notifies eligible students.
// POST /api/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List lists company postings with optional filters.
// GET /api/companies
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.companySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByID returns one company with its tasks.
// GET /api/companies/:id
func (h *CompanyHandler) GetByID(c *gin.Context) {
	result, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update updates a company posting. Meaningful changes notify eligible
// students.
// PUT /api/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete removes a company and all of its tasks.
// DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// AddTask creates a task under the company and notifies eligible students.
// POST /api/companies/:id/tasks
func (h *CompanyHandler) AddTask(c *gin.Context) {
	var req dto.AddCompanyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.AddTask(c.Request.Context(), c.Param("id"), &req)
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

// ListTasks lists the company's tasks ordered by deadline.
// GET /api/companies/:id/tasks
func (h *CompanyHandler) ListTasks(c *gin.Context) {
	result, err := h.companySvc.ListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
