package entity

import (
	"strings"
	"time"
)

// MessagePriority is the closed set of message priorities.
type MessagePriority string

const (
	PriorityNormal    MessagePriority = "normal"
	PriorityImportant MessagePriority = "important"
	PriorityUrgent    MessagePriority = "urgent"
)

// ParseMessagePriority normalises a raw priority; unknown values fall back
// to normal, matching the original behaviour.
func ParseMessagePriority(value string) MessagePriority {
	switch MessagePriority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityImportant:
		return PriorityImportant
	case PriorityUrgent:
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// DbMessage is a peer-to-peer note between two users.
type DbMessage struct {
	ID       uint            `gorm:"primarykey" json:"id"`
	FromID   uint            `gorm:"column:from_id;index;not null" json:"from_id"`
	ToID     uint            `gorm:"column:to_id;index;not null" json:"to_id"`
	Content  string          `gorm:"column:content;type:varchar(1000);not null" json:"content"`
	Priority MessagePriority `gorm:"column:priority;type:varchar(20);not null;default:normal" json:"priority"`
	IsRead   bool            `gorm:"column:is_read;not null;default:false" json:"is_read"`
	SentAt   time.Time       `gorm:"column:sent_at" json:"sent_at"`
}

// TableName overrides the default pluralised name.
func (DbMessage) TableName() string {
	return "messages"
}

type MessageSendRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Priority    string `json:"priority,omitempty"`
}

type MessageListResponse struct {
	Messages []DbMessage `json:"messages"`
}
