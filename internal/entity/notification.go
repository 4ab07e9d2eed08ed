package entity

import "time"

// NotificationTypeNewRegistration is the only type produced by the signup
// flow today; the column is kept extensible for future event kinds.
const NotificationTypeNewRegistration = "new_registration"

// DbAdminNotification is one entry in the admin work queue. Rows are never
// deleted; resolving stamps is_read, resolved_at and resolved_by.
type DbAdminNotification struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	UserID           uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	NotificationType string     `gorm:"column:notification_type;type:varchar(50);not null;default:new_registration" json:"notification_type"`
	Message          string     `gorm:"column:message;type:varchar(1000)" json:"message"`
	IsRead           bool       `gorm:"column:is_read;index;not null;default:false" json:"is_read"`
	CreatedAt        time.Time  `json:"created_at"`
	ResolvedAt       *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	ResolvedBy       *uint      `gorm:"column:resolved_by" json:"resolved_by,omitempty"`
}

// TableName overrides the default pluralised name.
func (DbAdminNotification) TableName() string {
	return "admin_notifications"
}

// NotificationView pairs a notification with the subject user, when the
// user still exists.
type NotificationView struct {
	DbAdminNotification
	User *UserSummary `json:"user,omitempty"`
}

type ApproveUserRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type RejectUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type NotificationListResponse struct {
	Notifications []NotificationView `json:"notifications"`
}
