package model

// Announcement is a broadcast message scoped by course/branch/year, mapped to
// announcements.
type Announcement struct {
	AnnouncementID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string      `gorm:"type:text;not null"                             json:"description"`
	CourseID       *string     `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	Branches       StringArray `gorm:"type:text[]"                                    json:"branches"`
	Years          IntArray    `gorm:"type:int[]"                                     json:"years"`
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName sets the table name.
func (Announcement) TableName() string { return "announcements" }
