package model

// User statuses. Only Active users are ever notification targets.
const (
	UserStatusPending  = "Pending"
	UserStatusActive   = "Active"
	UserStatusRejected = "Rejected"
)

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is a registered student or admin, mapped to users.
type User struct {
	UserID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string   `gorm:"type:varchar(255);not null;unique"              json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null"                     json:"-"`
	ScholarNo    string   `gorm:"type:varchar(20);not null;unique"               json:"scholar_no"`
	Role         string   `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	Status       string   `gorm:"type:varchar(20);not null;default:'Pending'"    json:"status"`
	CourseID     string   `gorm:"type:uuid;not null"                             json:"course_id"`
	Branch       string   `gorm:"type:varchar(10);not null"                      json:"branch"`
	Year         int      `gorm:"not null"                                       json:"year"`
	CGPA         float64  `gorm:"column:cgpa;type:numeric(4,2);not null"         json:"cgpa"`
	Phone        *string  `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	EmailPreferences
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// EmailPreferences are per-user opt-outs, all default true.
type EmailPreferences struct {
	TaskReminders           bool `gorm:"column:pref_task_reminders;not null;default:true" json:"task_reminders"`
	NewCompanyNotifications bool `gorm:"column:pref_new_companies;not null;default:true"  json:"new_company_notifications"`
	ApprovalNotifications   bool `gorm:"column:pref_approval;not null;default:true"       json:"approval_notifications"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
