package sql

import (
	"context"
	"fmt"
	"time"

	"school/internal/entity"

	"gorm.io/gorm"
)

// CreateMessage persists a peer-to-peer message.
func (r *GormRepository) CreateMessage(ctx context.Context, message *entity.DbMessage) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if message == nil {
		return fmt.Errorf("message is nil")
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now().UTC()
	}
	if message.Priority == "" {
		message.Priority = entity.PriorityNormal
	}
	return r.db.WithContext(ctx).Create(message).Error
}

// GetMessage loads a message by ID.
func (r *GormRepository) GetMessage(ctx context.Context, id uint) (*entity.DbMessage, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid message id")
	}
	var message entity.DbMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessagesForUser returns messages sent to or by the user, newest first.
func (r *GormRepository) ListMessagesForUser(ctx context.Context, userID uint) ([]entity.DbMessage, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var messages []entity.DbMessage
	err := r.db.WithContext(ctx).
		Where("to_id = ? OR from_id = ?", userID, userID).
		Order("sent_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageRead flags a message as read.
func (r *GormRepository) MarkMessageRead(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid message id")
	}
	result := r.db.WithContext(ctx).
		Model(&entity.DbMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
