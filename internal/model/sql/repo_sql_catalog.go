package sql

import (
	"context"
	"fmt"

	"school/internal/entity"

	"gorm.io/gorm"
)

// CreateMajor persists a study programme.
func (r *GormRepository) CreateMajor(ctx context.Context, major *entity.DbMajor) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if major == nil {
		return fmt.Errorf("major is nil")
	}
	return r.db.WithContext(ctx).Create(major).Error
}

// UpdateMajor applies a partial update to a major.
func (r *GormRepository) UpdateMajor(ctx context.Context, id uint, updates entity.MajorUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbMajor{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMajor removes a major by ID.
func (r *GormRepository) DeleteMajor(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbMajor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListMajors returns every major, alphabetically.
func (r *GormRepository) ListMajors(ctx context.Context) ([]entity.DbMajor, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var majors []entity.DbMajor
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&majors).Error; err != nil {
		return nil, err
	}
	return majors, nil
}

// CreateSubject persists a taught subject.
func (r *GormRepository) CreateSubject(ctx context.Context, subject *entity.DbSubject) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if subject == nil {
		return fmt.Errorf("subject is nil")
	}
	return r.db.WithContext(ctx).Create(subject).Error
}

// UpdateSubject applies a partial update to a subject.
func (r *GormRepository) UpdateSubject(ctx context.Context, id uint, updates entity.SubjectUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbSubject{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSubject removes a subject by ID.
func (r *GormRepository) DeleteSubject(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbSubject{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListSubjects returns every subject, alphabetically.
func (r *GormRepository) ListSubjects(ctx context.Context) ([]entity.DbSubject, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var subjects []entity.DbSubject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}
