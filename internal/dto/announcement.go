package dto

// ── Announcement DTOs ──

// CreateAnnouncementRequest creates a scoped broadcast message.
type CreateAnnouncementRequest struct {
	Title       string   `json:"title"       binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	CourseID    *string  `json:"course_id"   binding:"omitempty,uuid"`
	Branches    []string `json:"branches"    binding:"omitempty,dive,max=10"`
	Years       []int    `json:"years"       binding:"omitempty,dive,min=1,max=4"`
}

// UpdateAnnouncementRequest updates an announcement. Only non-nil fields are
// applied; Branches/Years replace the stored lists when present.
type UpdateAnnouncementRequest struct {
	Title       *string  `json:"title"       binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	CourseID    *string  `json:"course_id"   binding:"omitempty,uuid"`
	Branches    []string `json:"branches"    binding:"omitempty,dive,max=10"`
	Years       []int    `json:"years"       binding:"omitempty,dive,min=1,max=4"`
}

// AnnouncementListRequest filters the announcement listing.
type AnnouncementListRequest struct {
	Branch   string `form:"branch" binding:"omitempty,max=10"`
	Year     int    `form:"year"   binding:"omitempty,min=1,max=4"`
	CourseID string `form:"course" binding:"omitempty,uuid"`
}
