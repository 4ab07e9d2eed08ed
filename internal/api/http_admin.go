package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"school/internal/entity"
	"school/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListNotifications returns the admin work queue, newest first. Each entry
// carries the subject user when that account still exists.
func (h *HTTPHandler) ListNotifications(c *gin.Context) {
	onlyUnread := c.Query("unread") == "true"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.repo.ListNotifications(ctx, onlyUnread)
	if err != nil {
		logrus.WithError(err).Error("failed to list notifications")
		InternalError(c, "failed to list notifications")
		return
	}

	views := make([]entity.NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		view := entity.NotificationView{DbAdminNotification: notification}
		user, err := h.repo.GetUserByID(ctx, notification.UserID)
		if err == nil {
			summary := h.makeUserSummary(user)
			view.User = &summary
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("user_id", notification.UserID).Error("failed to load notification subject")
			InternalError(c, "failed to list notifications")
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, entity.NotificationListResponse{Notifications: views})
}

// PendingUsers lists accounts waiting for an approval decision, oldest
// first.
func (h *HTTPHandler) PendingUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.ListPendingUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list pending users")
		InternalError(c, "failed to list pending users")
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, h.makeUserSummary(&users[i]))
	}
	c.JSON(http.StatusOK, entity.UserListResponse{Users: summaries})
}

// ApproveUser grants a role to a pending account and closes its
// registration notification.
func (h *HTTPHandler) ApproveUser(c *gin.Context) {
	actor := CurrentUser(c)
	if actor == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	role := entity.ParseRole(req.Role)
	if role == "" {
		BadRequest(c, ErrCodeInvalidRole, "unknown role")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.approvalService.Approve(ctx, req.UserID, role, actor.ID)
	if err != nil {
		h.writeApprovalError(c, err, req.UserID)
		return
	}

	c.JSON(http.StatusOK, h.makeUserSummary(user))
}

// RejectUser marks a pending account rejected and closes its registration
// notification.
func (h *HTTPHandler) RejectUser(c *gin.Context) {
	actor := CurrentUser(c)
	if actor == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.RejectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.approvalService.Reject(ctx, req.UserID, actor.ID)
	if err != nil {
		h.writeApprovalError(c, err, req.UserID)
		return
	}

	c.JSON(http.StatusOK, h.makeUserSummary(user))
}

func (h *HTTPHandler) writeApprovalError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, "admin permission required")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeUserNotFound, "user not found")
	case errors.Is(err, service.ErrInvalidRole):
		BadRequest(c, ErrCodeInvalidRole, "role cannot be assigned at approval")
	default:
		logrus.WithError(err).WithField("user_id", userID).Error("approval decision failed")
		InternalError(c, "failed to process approval decision")
	}
}

// SendEmail delivers an email to a user through the configured SMTP relay
// and records the attempt in the email log. Without a configured relay the
// log entry is still written, marked pending.
func (h *HTTPHandler) SendEmail(c *gin.Context) {
	actor := CurrentUser(c)
	if actor == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	recipient, err := h.repo.GetUserByID(ctx, req.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "recipient not found")
			return
		}
		logrus.WithError(err).Error("failed to load email recipient")
		InternalError(c, "failed to send email")
		return
	}

	status := entity.EmailStatusPending
	if h.mailer != nil {
		if err := h.mailer.Send(recipient.Email, req.Subject, req.Body); err != nil {
			logrus.WithError(err).WithField("recipient_id", recipient.ID).Warn("email delivery failed")
			status = entity.EmailStatusFailed
		} else {
			status = entity.EmailStatusSent
		}
	}

	logEntry := &entity.DbEmailLog{
		RecipientID: recipient.ID,
		SenderID:    actor.ID,
		Subject:     req.Subject,
		Body:        req.Body,
		SentAt:      time.Now().UTC(),
		Status:      status,
	}
	if err := h.repo.CreateEmailLog(ctx, logEntry); err != nil {
		logrus.WithError(err).Error("failed to record email log")
		InternalError(c, "failed to record email")
		return
	}

	if status == entity.EmailStatusFailed {
		ErrorResponseWithDetails(c, http.StatusBadGateway, ErrCodeDeliveryFailed, "email could not be delivered", gin.H{"email_log_id": logEntry.ID})
		return
	}
	c.JSON(http.StatusCreated, logEntry)
}

// ListEmailLogs returns the sent-email history, newest first.
func (h *HTTPHandler) ListEmailLogs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	logs, err := h.repo.ListEmailLogs(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list email logs")
		InternalError(c, "failed to list email logs")
		return
	}
	c.JSON(http.StatusOK, entity.EmailLogListResponse{Emails: logs})
}
