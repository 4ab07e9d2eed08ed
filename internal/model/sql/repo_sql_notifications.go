package sql

import (
	"context"
	"fmt"
	"time"

	"school/internal/entity"

	"gorm.io/gorm"
)

// CreateNotification appends an entry to the admin work queue.
func (r *GormRepository) CreateNotification(ctx context.Context, notification *entity.DbAdminNotification) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if notification == nil {
		return fmt.Errorf("notification is nil")
	}
	if notification.UserID == 0 {
		return fmt.Errorf("notification has no subject user")
	}
	if notification.NotificationType == "" {
		notification.NotificationType = entity.NotificationTypeNewRegistration
	}
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListNotifications returns notifications newest first; onlyUnread filters
// out resolved entries.
func (r *GormRepository) ListNotifications(ctx context.Context, onlyUnread bool) ([]entity.DbAdminNotification, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbAdminNotification{})
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}
	var notifications []entity.DbAdminNotification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// ResolveNotification marks one unresolved notification for the user as
// read and stamps the resolver. When several unresolved entries exist for
// the same user only one is resolved; no particular one is guaranteed.
// Returns gorm.ErrRecordNotFound when none exists.
func (r *GormRepository) ResolveNotification(ctx context.Context, userID, resolverID uint) (*entity.DbAdminNotification, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	var notification entity.DbAdminNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("id ASC").
		First(&notification).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	notification.IsRead = true
	notification.ResolvedAt = &now
	notification.ResolvedBy = &resolverID

	updates := map[string]interface{}{
		"is_read":     true,
		"resolved_at": now,
		"resolved_by": resolverID,
	}
	result := r.db.WithContext(ctx).
		Model(&entity.DbAdminNotification{}).
		Where("id = ?", notification.ID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &notification, nil
}
