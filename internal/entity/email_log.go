package entity

import "time"

// EmailStatus is the delivery disposition of a logged email.
type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusPending EmailStatus = "pending"
)

// DbEmailLog records a message an admin sent to a user. It is a log entry,
// not a delivery queue; the SMTP attempt happens before the row is written.
type DbEmailLog struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	RecipientID uint        `gorm:"column:recipient_id;index;not null" json:"recipient_id"`
	SenderID    uint        `gorm:"column:sender_id;index;not null" json:"sender_id"`
	Subject     string      `gorm:"column:subject;type:varchar(200)" json:"subject"`
	Body        string      `gorm:"column:body;type:text" json:"body"`
	SentAt      time.Time   `gorm:"column:sent_at" json:"sent_at"`
	Status      EmailStatus `gorm:"column:status;type:varchar(50);not null;default:sent" json:"status"`
}

// TableName overrides the default pluralised name.
func (DbEmailLog) TableName() string {
	return "email_logs"
}

type SendEmailRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

type EmailLogListResponse struct {
	Emails []DbEmailLog `json:"emails"`
}
