package entity

import "time"

// DbAbsence records a student missing a class slot.
type DbAbsence struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	StudentID  uint      `gorm:"column:student_id;index;not null" json:"student_id"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Justified  bool      `gorm:"column:justified;not null;default:false" json:"justified"`
	Details    string    `gorm:"column:details;type:varchar(1000)" json:"details"`
}

// TableName overrides the default pluralised name.
func (DbAbsence) TableName() string {
	return "absences"
}

type AbsenceCreateRequest struct {
	OccurredAt string `json:"occurred_at" binding:"required"`
	Justified  bool   `json:"justified"`
	Details    string `json:"details,omitempty"`
}

type AbsenceUpdateRequest struct {
	OccurredAt *string `json:"occurred_at,omitempty"`
	Justified  *bool   `json:"justified,omitempty"`
	Details    *string `json:"details,omitempty"`
}

type AbsenceListResponse struct {
	Absences []DbAbsence `json:"absences"`
}
