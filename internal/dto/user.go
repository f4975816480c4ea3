package dto

// ── User / Admin DTOs ──

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	Branch     string  `json:"branch"`
	Year       int     `json:"year"`
	CGPA       float64 `json:"cgpa"`
	ScholarNo  string  `json:"scholar_no"`
	Phone      *string `json:"phone,omitempty"`
	CourseName string  `json:"course_name,omitempty"`
	IsApproved bool    `json:"is_approved"`

	EmailPreferences EmailPreferencesResponse `json:"email_preferences"`
}

// EmailPreferencesResponse mirrors the per-user opt-outs.
type EmailPreferencesResponse struct {
	TaskReminders           bool `json:"task_reminders"`
	NewCompanyNotifications bool `json:"new_company_notifications"`
	ApprovalNotifications   bool `json:"approval_notifications"`
}

// StudentListRequest filters the admin student listing.
type StudentListRequest struct {
	Status   string `form:"status"  binding:"omitempty,oneof=Pending Active Rejected"`
	Branch   string `form:"branch"  binding:"omitempty,max=10"`
	Year     int    `form:"year"    binding:"omitempty,min=1,max=4"`
	CourseID string `form:"course"  binding:"omitempty,uuid"`
}

// DashboardStatsResponse summarizes student counts for the admin dashboard.
type DashboardStatsResponse struct {
	TotalStudents    int64 `json:"total_students"`
	PendingStudents  int64 `json:"pending_students"`
	ActiveStudents   int64 `json:"active_students"`
	RejectedStudents int64 `json:"rejected_students"`
}

// ImportStudentsResponse reports the outcome of an Excel bulk import.
type ImportStudentsResponse struct {
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
	Errors  []ImportStudentError `json:"errors,omitempty"`
}

// ImportStudentError describes one rejected import row.
type ImportStudentError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
