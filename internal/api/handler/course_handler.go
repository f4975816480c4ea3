package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

// CourseHandler serves the course catalog endpoints.
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates the CourseHandler.
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// List lists all courses. Public, the signup form needs it.
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	result, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByID returns one course.
// GET /api/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	result, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 11004, "course not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create adds a course to the catalog.
// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseExists) {
			response.Error(c, http.StatusConflict, 15001, "course already exists")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}
