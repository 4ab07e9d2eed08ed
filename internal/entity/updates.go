package entity

import "time"

// UserUpdates collects the mutable user columns for a partial update.
type UserUpdates struct {
	Email        *string
	DisplayName  *string
	PasswordHash *string
	Role         *Role
	Status       *Status
	Age          *int
	Address      *string
	Registration *string
	Gender       *string
	About        *string
	Phone        *string
	Major        *string
	Year         *int
	PicturePath  *string
	RegisterDate *time.Time
}

// ToMap converts the set fields into a GORM updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.DisplayName != nil {
		updates["display_name"] = *u.DisplayName
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.Age != nil {
		updates["age"] = *u.Age
	}
	if u.Address != nil {
		updates["address"] = *u.Address
	}
	if u.Registration != nil {
		updates["registration"] = *u.Registration
	}
	if u.Gender != nil {
		updates["gender"] = *u.Gender
	}
	if u.About != nil {
		updates["about"] = *u.About
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.Major != nil {
		updates["major"] = *u.Major
	}
	if u.Year != nil {
		updates["year"] = *u.Year
	}
	if u.PicturePath != nil {
		updates["picture_path"] = *u.PicturePath
	}
	if u.RegisterDate != nil {
		updates["register_date"] = *u.RegisterDate
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// GradeUpdates collects mutable grade columns.
type GradeUpdates struct {
	Subject  *string
	Grade    *float64
	GradedOn *time.Time
}

// ToMap converts the set fields into a GORM updates map.
func (u GradeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Subject != nil {
		updates["subject"] = *u.Subject
	}
	if u.Grade != nil {
		updates["grade"] = *u.Grade
	}
	if u.GradedOn != nil {
		updates["graded_on"] = *u.GradedOn
	}
	return updates
}

// AbsenceUpdates collects mutable absence columns.
type AbsenceUpdates struct {
	OccurredAt *time.Time
	Justified  *bool
	Details    *string
}

// ToMap converts the set fields into a GORM updates map.
func (u AbsenceUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.OccurredAt != nil {
		updates["occurred_at"] = *u.OccurredAt
	}
	if u.Justified != nil {
		updates["justified"] = *u.Justified
	}
	if u.Details != nil {
		updates["details"] = *u.Details
	}
	return updates
}

// PaymentUpdates collects mutable payment columns.
type PaymentUpdates struct {
	MonthPaid *time.Time
	PaidOn    *time.Time
	Amount    *float64
	Status    *string
	Type      *string
}

// ToMap converts the set fields into a GORM updates map.
func (u PaymentUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.MonthPaid != nil {
		updates["month_paid"] = *u.MonthPaid
	}
	if u.PaidOn != nil {
		updates["paid_on"] = *u.PaidOn
	}
	if u.Amount != nil {
		updates["amount"] = *u.Amount
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.Type != nil {
		updates["type"] = *u.Type
	}
	return updates
}

// MajorUpdates collects mutable major columns.
type MajorUpdates struct {
	Name          *string
	DurationYears *float64
}

// ToMap converts the set fields into a GORM updates map.
func (u MajorUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.DurationYears != nil {
		updates["duration_years"] = *u.DurationYears
	}
	return updates
}

// SubjectUpdates collects mutable subject columns.
type SubjectUpdates struct {
	Name      *string
	TeacherID *uint
}

// ToMap converts the set fields into a GORM updates map.
func (u SubjectUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.TeacherID != nil {
		updates["teacher_id"] = *u.TeacherID
	}
	return updates
}
