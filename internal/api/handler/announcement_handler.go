package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// AnnouncementHandler serves the announcement endpoints.
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler creates the AnnouncementHandler.
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// Create creates an announcement.
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.announcementSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.BadRequest(c, 11004, "course not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List lists announcements with optional scope filters.
// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	var req dto.AnnouncementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.announcementSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByID returns one announcement.
// GET /api/announcements/:id
func (h *AnnouncementHandler) GetByID(c *gin.Context) {
	result, err := h.announcementSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 16001, "announcement not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update updates an announcement.
// PUT /api/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.announcementSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.NotFound(c, 16001, "announcement not found")
		case errors.Is(err, service.ErrCourseNotFound):
			response.BadRequest(c, 11004, "course not found")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete removes an announcement.
// DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 16001, "announcement not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
