package dto

// ── Auth DTOs ──

// SignupRequest mirrors the public registration form. New accounts stay
// Pending until an admin approves them.
type SignupRequest struct {
	Name      string  `json:"name"       binding:"required,min=3,max=100"`
	Email     string  `json:"email"      binding:"required,email"`
	Password  string  `json:"password"   binding:"required,min=6,max=72"`
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	Branch    string  `json:"branch"     binding:"required,oneof=CSE ECE ME EE CE MDS CHE MME MCA Other"`
	Year      int     `json:"year"       binding:"required,min=1,max=4"`
	CGPA      float64 `json:"cgpa"       binding:"min=0,max=10"`
	ScholarNo string  `json:"scholar_no" binding:"required,min=5,max=20"`
}

// SignupResponse returns the created account's id and approval status.
type SignupResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// LoginRequest authenticates by email.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued token pair and the user profile.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest updates the caller's own profile. Only non-nil fields
// are applied.
type UpdateProfileRequest struct {
	Name      *string  `json:"name"       binding:"omitempty,min=3,max=100"`
	Email     *string  `json:"email"      binding:"omitempty,email"`
	Branch    *string  `json:"branch"     binding:"omitempty,oneof=CSE ECE ME EE CE MDS CHE MME MCA Other"`
	Year      *int     `json:"year"       binding:"omitempty,min=1,max=4"`
	CGPA      *float64 `json:"cgpa"       binding:"omitempty,min=0,max=10"`
	ScholarNo *string  `json:"scholar_no" binding:"omitempty,min=5,max=20"`
	Phone     *string  `json:"phone"      binding:"omitempty,max=20"`
}

// UpdateEmailPreferencesRequest toggles the caller's notification opt-outs.
type UpdateEmailPreferencesRequest struct {
	TaskReminders           *bool `json:"task_reminders"`
	NewCompanyNotifications *bool `json:"new_company_notifications"`
	ApprovalNotifications   *bool `json:"approval_notifications"`
}
