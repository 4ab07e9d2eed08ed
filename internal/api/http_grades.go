package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"school/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// studentIDParam parses the :student_id path parameter.
func studentIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("student_id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid student id")
		return 0, false
	}
	return uint(parsed), true
}

// recordIDParam parses the :id path parameter.
func recordIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid record id")
		return 0, false
	}
	return uint(parsed), true
}

// canViewStudent allows a student to read their own records and staff to
// read anyone's.
func canViewStudent(user *RequestUser, studentID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == studentID || user.IsStaff()
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// ListGrades returns a student's grades with their running mean.
func (h *HTTPHandler) ListGrades(c *gin.Context) {
	user := CurrentUser(c)
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	if !canViewStudent(user, studentID) {
		Forbidden(c, "cannot view another student's grades")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	grades, err := h.repo.ListGradesForStudent(ctx, studentID)
	if err != nil {
		logrus.WithError(err).WithField("student_id", studentID).Error("failed to list grades")
		InternalError(c, "failed to list grades")
		return
	}

	mean := 0.0
	if len(grades) > 0 {
		mean, err = h.repo.GradeMeanForStudent(ctx, studentID)
		if err != nil {
			logrus.WithError(err).WithField("student_id", studentID).Error("failed to compute grade mean")
			InternalError(c, "failed to list grades")
			return
		}
	}

	c.JSON(http.StatusOK, entity.GradeListResponse{Grades: grades, Mean: mean})
}

// CreateGrade records a new mark for a student. Staff only.
func (h *HTTPHandler) CreateGrade(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	var req entity.GradeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	gradedOn, err := parseDate(req.GradedOn)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "graded_on must be YYYY-MM-DD")
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
		InternalError(c, "failed to create grade")
		return
	}

	grade := &entity.DbGrade{
		StudentID: studentID,
		Subject:   req.Subject,
		Grade:     req.Grade,
		GradedOn:  gradedOn,
	}
	if err := h.repo.CreateGrade(ctx, grade); err != nil {
		logrus.WithError(err).Error("failed to create grade")
		InternalError(c, "failed to create grade")
		return
	}
	c.JSON(http.StatusCreated, grade)
}

// UpdateGrade edits an existing mark. Staff only.
func (h *HTTPHandler) UpdateGrade(c *gin.Context) {
	gradeID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.GradeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := entity.GradeUpdates{
		Subject: req.Subject,
		Grade:   req.Grade,
	}
	if req.GradedOn != nil {
		parsed, err := parseDate(*req.GradedOn)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "graded_on must be YYYY-MM-DD")
			return
		}
		updates.GradedOn = &parsed
	}
	if len(updates.ToMap()) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateGrade(ctx, gradeID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "grade not found")
			return
		}
		logrus.WithError(err).Error("failed to update grade")
		InternalError(c, "failed to update grade")
		return
	}

	grade, err := h.repo.GetGrade(ctx, gradeID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload grade")
		InternalError(c, "failed to update grade")
		return
	}
	c.JSON(http.StatusOK, grade)
}

// DeleteGrade removes a mark. Staff only.
func (h *HTTPHandler) DeleteGrade(c *gin.Context) {
	gradeID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteGrade(ctx, gradeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "grade not found")
			return
		}
		logrus.WithError(err).Error("failed to delete grade")
		InternalError(c, "failed to delete grade")
		return
	}
	c.Status(http.StatusNoContent)
}
