package dto

// ── Company DTOs ──

// EligibilityRequest is the embedded constraint set on company writes.
// Empty branch/year lists mean no restriction.
type EligibilityRequest struct {
	CourseID *string  `json:"course_id" binding:"omitempty,uuid"`
	Branches []string `json:"branches"  binding:"omitempty,dive,max=10"`
	Years    []int    `json:"years"     binding:"omitempty,dive,min=1,max=4"`
	MinCGPA  *float64 `json:"min_cgpa"  binding:"omitempty,min=0,max=10"`
}

// DocumentRequest is one attached job-description document.
type DocumentRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	URL  string `json:"url"  binding:"required,url"`
}

// CreateCompanyRequest creates a company posting.
type CreateCompanyRequest struct {
	Name         string             `json:"name"         binding:"required,max=200"`
	Role         string             `json:"role"         binding:"required,max=200"`
	Description  string             `json:"description"  binding:"max=5000"`
	Compensation string             `json:"compensation" binding:"required,max=100"`
	Eligibility  EligibilityRequest `json:"eligibility"`
	Documents    []DocumentRequest  `json:"documents"    binding:"omitempty,dive"`
}

// UpdateCompanyRequest updates a company posting. Only non-nil fields are
// applied.
type UpdateCompanyRequest struct {
	Name         *string             `json:"name"         binding:"omitempty,max=200"`
	Role         *string             `json:"role"         binding:"omitempty,max=200"`
	Description  *string             `json:"description"  binding:"omitempty,max=5000"`
	Status       *string             `json:"status"       binding:"omitempty,oneof=Active Completed"`
	Compensation *string             `json:"compensation" binding:"omitempty,max=100"`
	Eligibility  *EligibilityRequest `json:"eligibility"`
	Documents    []DocumentRequest   `json:"documents"    binding:"omitempty,dive"`
}

// CompanyListRequest filters the company listing.
type CompanyListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=Active Completed"`
	Branch   string `form:"branch" binding:"omitempty,max=10"`
	Year     int    `form:"year"   binding:"omitempty,min=1,max=4"`
	CourseID string `form:"course" binding:"omitempty,uuid"`
}
