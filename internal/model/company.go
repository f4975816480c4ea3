package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Company statuses.
const (
	CompanyStatusActive    = "Active"
	CompanyStatusCompleted = "Completed"
)

// Company is a recruiting company posting, mapped to companies.
// The eligibility columns are captured into a constraint set at the moment a
// notification decision is made; later edits are never applied retroactively.
type Company struct {
	CompanyID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name         string `gorm:"type:varchar(200);not null"                     json:"name"`
	Role         string `gorm:"type:varchar(200);not null"                     json:"role"`
	Description  string `gorm:"type:text;not null;default:''"                  json:"description"`
	Status       string `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	Compensation string `gorm:"type:varchar(100);not null"                     json:"compensation"`
	Eligibility  Eligibility  `gorm:"embedded" json:"eligibility"`
	Documents    DocumentList `gorm:"type:jsonb;not null;default:'[]'" json:"documents"`
	BaseModel

	Tasks []Task `gorm:"foreignKey:CompanyID;references:CompanyID" json:"tasks,omitempty"`
}

// Eligibility restricts who a company's notifications reach.
// Empty branch/year sets mean no restriction; MinCGPA is an inclusive lower
// bound, nil meaning unrestricted.
type Eligibility struct {
	CourseID *string     `gorm:"column:elig_course_id;type:uuid"       json:"course_id,omitempty"`
	Branches StringArray `gorm:"column:elig_branches;type:text[]"      json:"branches"`
	Years    IntArray    `gorm:"column:elig_years;type:int[]"          json:"years"`
	MinCGPA  *float64    `gorm:"column:elig_min_cgpa;type:numeric(4,2)" json:"min_cgpa,omitempty"`
}

// Document is one attached job-description file.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DocumentList maps a JSONB column of documents.
type DocumentList []Document

// Scan implements sql.Scanner.
func (d *DocumentList) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("DocumentList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, d)
}

// Value implements driver.Valuer.
func (d DocumentList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// TableName sets the table name.
func (Company) TableName() string { return "companies" }
