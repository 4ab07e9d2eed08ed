package entity

// DbMajor is a study programme offered by the school.
type DbMajor struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	Name          string  `gorm:"column:name;type:varchar(100);not null" json:"name"`
	DurationYears float64 `gorm:"column:duration_years" json:"duration_years"`
}

// TableName overrides the default pluralised name.
func (DbMajor) TableName() string {
	return "majors"
}

// DbSubject is a taught subject, optionally bound to a teacher.
type DbSubject struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	TeacherID uint   `gorm:"column:teacher_id;index" json:"teacher_id"`
}

// TableName overrides the default pluralised name.
func (DbSubject) TableName() string {
	return "subjects"
}

type MajorCreateRequest struct {
	Name          string  `json:"name" binding:"required"`
	DurationYears float64 `json:"duration_years" binding:"required"`
}

type MajorUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	DurationYears *float64 `json:"duration_years,omitempty"`
}

type SubjectCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID uint   `json:"teacher_id,omitempty"`
}

type SubjectUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	TeacherID *uint   `json:"teacher_id,omitempty"`
}

type MajorListResponse struct {
	Majors []DbMajor `json:"majors"`
}

type SubjectListResponse struct {
	Subjects []DbSubject `json:"subjects"`
}
