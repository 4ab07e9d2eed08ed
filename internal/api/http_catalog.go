package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"school/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListMajors returns every study programme.
func (h *HTTPHandler) ListMajors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	majors, err := h.repo.ListMajors(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list majors")
		InternalError(c, "failed to list majors")
		return
	}
	c.JSON(http.StatusOK, entity.MajorListResponse{Majors: majors})
}

// CreateMajor adds a study programme. Admin only.
func (h *HTTPHandler) CreateMajor(c *gin.Context) {
	var req entity.MajorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	major := &entity.DbMajor{
		Name:          req.Name,
		DurationYears: req.DurationYears,
	}
	if err := h.repo.CreateMajor(ctx, major); err != nil {
		logrus.WithError(err).Error("failed to create major")
		InternalError(c, "failed to create major")
		return
	}
	c.JSON(http.StatusCreated, major)
}

// UpdateMajor edits a study programme. Admin only.
func (h *HTTPHandler) UpdateMajor(c *gin.Context) {
	majorID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.MajorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	updates := entity.MajorUpdates{
		Name:          req.Name,
		DurationYears: req.DurationYears,
	}
	if len(updates.ToMap()) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateMajor(ctx, majorID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "major not found")
			return
		}
		logrus.WithError(err).Error("failed to update major")
		InternalError(c, "failed to update major")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMajor removes a study programme. Admin only.
func (h *HTTPHandler) DeleteMajor(c *gin.Context) {
	majorID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteMajor(ctx, majorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "major not found")
			return
		}
		logrus.WithError(err).Error("failed to delete major")
		InternalError(c, "failed to delete major")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubjects returns every taught subject.
func (h *HTTPHandler) ListSubjects(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	subjects, err := h.repo.ListSubjects(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list subjects")
		InternalError(c, "failed to list subjects")
		return
	}
	c.JSON(http.StatusOK, entity.SubjectListResponse{Subjects: subjects})
}

// CreateSubject adds a taught subject, optionally bound to a teacher.
// Admin only.
func (h *HTTPHandler) CreateSubject(c *gin.Context) {
	var req entity.SubjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if req.TeacherID != 0 {
		teacher, err := h.repo.GetUserByID(ctx, req.TeacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				NotFound(c, ErrCodeUserNotFound, "teacher not found")
				return
			}
			logrus.WithError(err).Error("failed to load teacher")
			InternalError(c, "failed to create subject")
			return
		}
		if !teacher.Role.IsStaff() {
			BadRequest(c, ErrCodeInvalidRole, "assigned user is not a teacher")
			return
		}
	}

	subject := &entity.DbSubject{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}
	if err := h.repo.CreateSubject(ctx, subject); err != nil {
		logrus.WithError(err).Error("failed to create subject")
		InternalError(c, "failed to create subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// UpdateSubject edits a taught subject. Admin only.
func (h *HTTPHandler) UpdateSubject(c *gin.Context) {
	subjectID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.SubjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	updates := entity.SubjectUpdates{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}
	if len(updates.ToMap()) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateSubject(ctx, subjectID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "subject not found")
			return
		}
		logrus.WithError(err).Error("failed to update subject")
		InternalError(c, "failed to update subject")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSubject removes a taught subject. Admin only.
func (h *HTTPHandler) DeleteSubject(c *gin.Context) {
	subjectID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteSubject(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "subject not found")
			return
		}
		logrus.WithError(err).Error("failed to delete subject")
		InternalError(c, "failed to delete subject")
		return
	}
	c.Status(http.StatusNoContent)
}
