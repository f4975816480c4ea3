package model

import "time"

// Task statuses.
const (
	TaskStatusActive    = "Active"
	TaskStatusCompleted = "Completed"
	TaskStatusExpired   = "Expired"
)

// Reminder thresholds. Each maps to its own sent flag; the flags are
// independent, never mutually exclusive, and never reset once true.
const (
	ReminderOneDay  = "oneDay"
	ReminderSixHour = "sixHour"
)

// Task is a submission task owned by a company, mapped to tasks.
// Deleted together with its owning company.
type Task struct {
	TaskID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	CompanyID   string    `gorm:"type:uuid;not null"                             json:"company_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null"                             json:"description"`
	Deadline    time.Time `gorm:"not null"                                       json:"deadline"`
	PPTLink     string    `gorm:"column:ppt_link;type:text;not null;default:''"  json:"ppt_link"`
	FormLink    string    `gorm:"type:text;not null;default:''"                  json:"form_link"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	OneDayReminderSent  bool `gorm:"not null;default:false" json:"one_day_reminder_sent"`
	SixHourReminderSent bool `gorm:"not null;default:false" json:"six_hour_reminder_sent"`
	BaseModel

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// ReminderSent reads the flag for the given threshold.
func (t *Task) ReminderSent(threshold string) bool {
	if threshold == ReminderOneDay {
		return t.OneDayReminderSent
	}
	return t.SixHourReminderSent
}

// TableName sets the table name.
func (Task) TableName() string { return "tasks" }
