package sql

import (
	"context"
	"fmt"
	"time"

	"school/internal/entity"
)

// CreateEmailLog records an admin email, whatever its delivery outcome.
func (r *GormRepository) CreateEmailLog(ctx context.Context, log *entity.DbEmailLog) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if log == nil {
		return fmt.Errorf("email log is nil")
	}
	if log.SentAt.IsZero() {
		log.SentAt = time.Now().UTC()
	}
	if log.Status == "" {
		log.Status = entity.EmailStatusSent
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListEmailLogs returns logged emails, newest first.
func (r *GormRepository) ListEmailLogs(ctx context.Context) ([]entity.DbEmailLog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var logs []entity.DbEmailLog
	if err := r.db.WithContext(ctx).Order("sent_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
