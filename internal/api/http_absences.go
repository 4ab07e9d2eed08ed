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

// ListAbsences returns a student's absence records.
func (h *HTTPHandler) ListAbsences(c *gin.Context) {
	user := CurrentUser(c)
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	if !canViewStudent(user, studentID) {
		Forbidden(c, "cannot view another student's absences")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	absences, err := h.repo.ListAbsencesForStudent(ctx, studentID)
	if err != nil {
		logrus.WithError(err).WithField("student_id", studentID).Error("failed to list absences")
		InternalError(c, "failed to list absences")
		return
	}
	c.JSON(http.StatusOK, entity.AbsenceListResponse{Absences: absences})
}

// CreateAbsence records a missed class slot. Staff only.
func (h *HTTPHandler) CreateAbsence(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	var req entity.AbsenceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	occurredAt, err := parseDate(req.OccurredAt)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "occurred_at must be YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "student not found")
			return
		}
		logrus.WithError(err).Error("failed to load student")
		InternalError(c, "failed to create absence")
		return
	}

	absence := &entity.DbAbsence{
		StudentID:  studentID,
		OccurredAt: occurredAt,
		Justified:  req.Justified,
		Details:    req.Details,
	}
	if err := h.repo.CreateAbsence(ctx, absence); err != nil {
		logrus.WithError(err).Error("failed to create absence")
		InternalError(c, "failed to create absence")
		return
	}
	c.JSON(http.StatusCreated, absence)
}

// UpdateAbsence edits an absence record, typically to mark it justified.
// Staff only.
func (h *HTTPHandler) UpdateAbsence(c *gin.Context) {
	absenceID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.AbsenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := entity.AbsenceUpdates{
		Justified: req.Justified,
		Details:   req.Details,
	}
	if req.OccurredAt != nil {
		parsed, err := parseDate(*req.OccurredAt)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "occurred_at must be YYYY-MM-DD")
			return
		}
		updates.OccurredAt = &parsed
	}
	if len(updates.ToMap()) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateAbsence(ctx, absenceID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "absence not found")
			return
		}
		logrus.WithError(err).Error("failed to update absence")
		InternalError(c, "failed to update absence")
		return
	}

	absence, err := h.repo.GetAbsence(ctx, absenceID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload absence")
		InternalError(c, "failed to update absence")
		return
	}
	c.JSON(http.StatusOK, absence)
}

// DeleteAbsence removes an absence record. Staff only.
func (h *HTTPHandler) DeleteAbsence(c *gin.Context) {
	absenceID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteAbsence(ctx, absenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "absence not found")
			return
		}
		logrus.WithError(err).Error("failed to delete absence")
		InternalError(c, "failed to delete absence")
		return
	}
	c.Status(http.StatusNoContent)
}
