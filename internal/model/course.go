package model

// Course is a degree program students register under, mapped to courses.
type Course struct {
	CourseID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name            string      `gorm:"type:varchar(20);not null;unique"               json:"name"`
	Duration        int         `gorm:"not null"                                       json:"duration"` // in years
	AllowedBranches StringArray `gorm:"type:text[];not null"                           json:"allowed_branches"`
	BaseModel
}

// TableName sets the table name.
func (Course) TableName() string { return "courses" }
