package dto

// ── Course DTOs ──

// CreateCourseRequest creates a degree program.
type CreateCourseRequest struct {
	Name            string   `json:"name"             binding:"required,max=20"`
	Duration        int      `json:"duration"         binding:"required,min=1,max=6"`
	AllowedBranches []string `json:"allowed_branches" binding:"required,min=1,dive,max=10"`
}
