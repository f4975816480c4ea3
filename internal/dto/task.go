package dto

import "time"

// ── Task DTOs ──

// CreateTaskRequest creates a task under a company.
type CreateTaskRequest struct {
	CompanyID   string    `json:"company_id"  binding:"required,uuid"`
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"required,max=5000"`
	Deadline    time.Time `json:"deadline"    binding:"required"`
	PPTLink     string    `json:"ppt_link"    binding:"omitempty,url"`
	FormLink    string    `json:"form_link"   binding:"omitempty,url"`
}

// AddCompanyTaskRequest creates a task via the company route; the company id
// comes from the path.
type AddCompanyTaskRequest struct {
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"required,max=5000"`
	Deadline    time.Time `json:"deadline"    binding:"required"`
	PPTLink     string    `json:"ppt_link"    binding:"omitempty,url"`
	FormLink    string    `json:"form_link"   binding:"omitempty,url"`
}

// UpdateTaskRequest updates a task. Only non-nil fields are applied.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Deadline    *time.Time `json:"deadline"`
	PPTLink     *string    `json:"ppt_link"    binding:"omitempty,url"`
	FormLink    *string    `json:"form_link"   binding:"omitempty,url"`
}
