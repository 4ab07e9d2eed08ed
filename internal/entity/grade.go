package entity

import "time"

// DbGrade is a single mark a student received in a subject.
type DbGrade struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `gorm:"column:student_id;index;not null" json:"student_id"`
	Subject   string    `gorm:"column:subject;type:varchar(100);not null" json:"subject"`
	Grade     float64   `gorm:"column:grade;not null" json:"grade"`
	GradedOn  time.Time `gorm:"column:graded_on" json:"graded_on"`
}

// TableName overrides the default pluralised name.
func (DbGrade) TableName() string {
	return "grades"
}

type GradeCreateRequest struct {
	Subject  string  `json:"subject" binding:"required"`
	Grade    float64 `json:"grade" binding:"required"`
	GradedOn string  `json:"graded_on" binding:"required"`
}

type GradeUpdateRequest struct {
	Subject  *string  `json:"subject,omitempty"`
	Grade    *float64 `json:"grade,omitempty"`
	GradedOn *string  `json:"graded_on,omitempty"`
}

type GradeListResponse struct {
	Grades []DbGrade `json:"grades"`
	Mean   float64   `json:"mean"`
}
