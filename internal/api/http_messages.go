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

// SendMessage delivers an in-app note to another user. Unknown priorities
// quietly fall back to normal.
func (h *HTTPHandler) SendMessage(c *gin.Context) {
	sender := CurrentUser(c)
	if sender == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.MessageSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if req.RecipientID == sender.ID {
		BadRequest(c, ErrCodeCannotMessageSelf, "cannot send a message to yourself")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "recipient not found")
			return
		}
		logrus.WithError(err).Error("failed to load message recipient")
		InternalError(c, "failed to send message")
		return
	}

	message := &entity.DbMessage{
		FromID:   sender.ID,
		ToID:     req.RecipientID,
		Content:  req.Content,
		Priority: entity.ParseMessagePriority(req.Priority),
		SentAt:   time.Now().UTC(),
	}
	if err := h.repo.CreateMessage(ctx, message); err != nil {
		logrus.WithError(err).Error("failed to store message")
		InternalError(c, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListMessages returns every message sent to or by the current user,
// newest first.
func (h *HTTPHandler) ListMessages(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	messages, err := h.repo.ListMessagesForUser(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to list messages")
		InternalError(c, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, entity.MessageListResponse{Messages: messages})
}

// MarkMessageRead flags a message as read. Only the recipient may do this;
// anyone else gets a not-found so message IDs leak nothing.
func (h *HTTPHandler) MarkMessageRead(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || messageID == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid message id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	message, err := h.repo.GetMessage(ctx, uint(messageID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "message not found")
			return
		}
		logrus.WithError(err).Error("failed to load message")
		InternalError(c, "failed to update message")
		return
	}
	if message.ToID != user.ID {
		NotFound(c, ErrCodeRecordNotFound, "message not found")
		return
	}

	if err := h.repo.MarkMessageRead(ctx, message.ID); err != nil {
		logrus.WithError(err).Error("failed to mark message read")
		InternalError(c, "failed to update message")
		return
	}

	message.IsRead = true
	c.JSON(http.StatusOK, message)
}
