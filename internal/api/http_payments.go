package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"school/internal/entity"
	"school/internal/pdf"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListPayments returns a student's payment history.
func (h *HTTPHandler) ListPayments(c *gin.Context) {
	user := CurrentUser(c)
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	if !canViewStudent(user, studentID) {
		Forbidden(c, "cannot view another student's payments")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	payments, err := h.repo.ListPaymentsForStudent(ctx, studentID)
	if err != nil {
		logrus.WithError(err).WithField("student_id", studentID).Error("failed to list payments")
		InternalError(c, "failed to list payments")
		return
	}
	c.JSON(http.StatusOK, entity.PaymentListResponse{Payments: payments})
}

// CreatePayment records a tuition payment. Admin only.
func (h *HTTPHandler) CreatePayment(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}

	var req entity.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	monthPaid, err := parseDate(req.MonthPaid)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "month_paid must be YYYY-MM-DD")
		return
	}
	paidOn, err := parseDate(req.PaidOn)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "paid_on must be YYYY-MM-DD")
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
		InternalError(c, "failed to create payment")
		return
	}

	payment := &entity.DbPayment{
		StudentID: studentID,
		MonthPaid: monthPaid,
		PaidOn:    paidOn,
		Amount:    req.Amount,
		Status:    req.Status,
		Type:      req.Type,
	}
	if err := h.repo.CreatePayment(ctx, payment); err != nil {
		logrus.WithError(err).Error("failed to create payment")
		InternalError(c, "failed to create payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment edits a payment record. Admin only.
func (h *HTTPHandler) UpdatePayment(c *gin.Context) {
	paymentID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.PaymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := entity.PaymentUpdates{
		Amount: req.Amount,
		Status: req.Status,
		Type:   req.Type,
	}
	if req.MonthPaid != nil {
		parsed, err := parseDate(*req.MonthPaid)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "month_paid must be YYYY-MM-DD")
			return
		}
		updates.MonthPaid = &parsed
	}
	if req.PaidOn != nil {
		parsed, err := parseDate(*req.PaidOn)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "paid_on must be YYYY-MM-DD")
			return
		}
		updates.PaidOn = &parsed
	}
	if len(updates.ToMap()) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdatePayment(ctx, paymentID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "payment not found")
			return
		}
		logrus.WithError(err).Error("failed to update payment")
		InternalError(c, "failed to update payment")
		return
	}

	payment, err := h.repo.GetPayment(ctx, paymentID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload payment")
		InternalError(c, "failed to update payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment record. Admin only.
func (h *HTTPHandler) DeletePayment(c *gin.Context) {
	paymentID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeletePayment(ctx, paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "payment not found")
			return
		}
		logrus.WithError(err).Error("failed to delete payment")
		InternalError(c, "failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

// PaymentReceipt renders a payment proof PDF for download.
func (h *HTTPHandler) PaymentReceipt(c *gin.Context) {
	user := CurrentUser(c)
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	if !canViewStudent(user, studentID) {
		Forbidden(c, "cannot view another student's payments")
		return
	}
	paymentID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	payment, err := h.repo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "payment not found")
			return
		}
		logrus.WithError(err).Error("failed to load payment")
		InternalError(c, "failed to render receipt")
		return
	}
	if payment.StudentID != studentID {
		NotFound(c, ErrCodeRecordNotFound, "payment not found")
		return
	}

	student, err := h.repo.GetUserByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "student not found")
			return
		}
		logrus.WithError(err).Error("failed to load student")
		InternalError(c, "failed to render receipt")
		return
	}

	document, err := pdf.PaymentReceipt(student, payment)
	if err != nil {
		logrus.WithError(err).WithField("payment_id", paymentID).Error("failed to render receipt")
		InternalError(c, "failed to render receipt")
		return
	}

	filename := fmt.Sprintf("payment_student_%d.pdf", studentID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", document)
}
