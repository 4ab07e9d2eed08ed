package entity

import "time"

// DbPayment is a tuition payment record for a student.
type DbPayment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `gorm:"column:student_id;index;not null" json:"student_id"`
	MonthPaid time.Time `gorm:"column:month_paid;not null" json:"month_paid"`
	PaidOn    time.Time `gorm:"column:paid_on;not null" json:"paid_on"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Status    string    `gorm:"column:status;type:varchar(100)" json:"status"`
	Type      string    `gorm:"column:type;type:varchar(100)" json:"type"`
}

// TableName overrides the default pluralised name.
func (DbPayment) TableName() string {
	return "payments"
}

type PaymentCreateRequest struct {
	MonthPaid string  `json:"month_paid" binding:"required"`
	PaidOn    string  `json:"paid_on" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Status    string  `json:"status,omitempty"`
	Type      string  `json:"type,omitempty"`
}

type PaymentUpdateRequest struct {
	MonthPaid *string  `json:"month_paid,omitempty"`
	PaidOn    *string  `json:"paid_on,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Type      *string  `json:"type,omitempty"`
}

type PaymentListResponse struct {
	Payments []DbPayment `json:"payments"`
}
