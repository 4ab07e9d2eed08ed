package sql

import (
	"context"
	"fmt"

	"school/internal/entity"
	"school/internal/model/iface"

	"gorm.io/gorm"
)

// GormRepository implements model.Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Transaction runs fn against a repository bound to a database transaction.
// Returning an error from fn rolls everything back.
func (r *GormRepository) Transaction(ctx context.Context, fn func(iface.Repository) error) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// calculatePagination calculates pagination metrics.
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

var _ iface.Repository = (*GormRepository)(nil)
