package sql

import (
	"context"
	"fmt"

	"school/internal/entity"

	"gorm.io/gorm"
)

// Grades, absences and payments share the same per-student access shape.

// CreateGrade persists a grade record.
func (r *GormRepository) CreateGrade(ctx context.Context, grade *entity.DbGrade) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if grade == nil {
		return fmt.Errorf("grade is nil")
	}
	return r.db.WithContext(ctx).Create(grade).Error
}

// GetGrade loads a grade by ID.
func (r *GormRepository) GetGrade(ctx context.Context, id uint) (*entity.DbGrade, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var grade entity.DbGrade
	if err := r.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

// UpdateGrade applies a partial update to a grade.
func (r *GormRepository) UpdateGrade(ctx context.Context, id uint, updates entity.GradeUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbGrade{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteGrade removes a grade by ID.
func (r *GormRepository) DeleteGrade(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbGrade{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListGradesForStudent returns a student's grades, newest first.
func (r *GormRepository) ListGradesForStudent(ctx context.Context, studentID uint) ([]entity.DbGrade, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var grades []entity.DbGrade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("graded_on DESC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

// GradeMeanForStudent computes the average grade; zero when no grades exist.
func (r *GormRepository) GradeMeanForStudent(ctx context.Context, studentID uint) (float64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var mean *float64
	err := r.db.WithContext(ctx).
		Model(&entity.DbGrade{}).
		Where("student_id = ?", studentID).
		Select("AVG(grade)").
		Scan(&mean).Error
	if err != nil {
		return 0, err
	}
	if mean == nil {
		return 0, nil
	}
	return *mean, nil
}

// CreateAbsence persists an absence record.
func (r *GormRepository) CreateAbsence(ctx context.Context, absence *entity.DbAbsence) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if absence == nil {
		return fmt.Errorf("absence is nil")
	}
	return r.db.WithContext(ctx).Create(absence).Error
}

// GetAbsence loads an absence by ID.
func (r *GormRepository) GetAbsence(ctx context.Context, id uint) (*entity.DbAbsence, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var absence entity.DbAbsence
	if err := r.db.WithContext(ctx).First(&absence, id).Error; err != nil {
		return nil, err
	}
	return &absence, nil
}

// UpdateAbsence applies a partial update to an absence.
func (r *GormRepository) UpdateAbsence(ctx context.Context, id uint, updates entity.AbsenceUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbAbsence{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAbsence removes an absence by ID.
func (r *GormRepository) DeleteAbsence(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbAbsence{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAbsencesForStudent returns a student's absences, newest first.
func (r *GormRepository) ListAbsencesForStudent(ctx context.Context, studentID uint) ([]entity.DbAbsence, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var absences []entity.DbAbsence
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("occurred_at DESC").
		Find(&absences).Error
	if err != nil {
		return nil, err
	}
	return absences, nil
}

// CreatePayment persists a payment record.
func (r *GormRepository) CreatePayment(ctx context.Context, payment *entity.DbPayment) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if payment == nil {
		return fmt.Errorf("payment is nil")
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetPayment loads a payment by ID.
func (r *GormRepository) GetPayment(ctx context.Context, id uint) (*entity.DbPayment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var payment entity.DbPayment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePayment applies a partial update to a payment.
func (r *GormRepository) UpdatePayment(ctx context.Context, id uint, updates entity.PaymentUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbPayment{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePayment removes a payment by ID.
func (r *GormRepository) DeletePayment(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbPayment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPaymentsForStudent returns a student's payments, newest first.
func (r *GormRepository) ListPaymentsForStudent(ctx context.Context, studentID uint) ([]entity.DbPayment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var payments []entity.DbPayment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("paid_on DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
