package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"school/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentUserContextKey = "current-user"
)

// RequestUser is the authenticated identity attached to the request
// context. Role and status come from the database, not the token, so a
// demotion or rejection takes effect on the next request.
type RequestUser struct {
	ID          uint
	Email       string
	DisplayName string
	Role        entity.Role
	Status      entity.Status
}

// IsAdmin reports whether the user carries admin permissions.
func (u *RequestUser) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role.IsAdmin()
}

// IsStaff reports whether the user may manage student records.
func (u *RequestUser) IsStaff() bool {
	if u == nil {
		return false
	}
	return u.Role.IsStaff()
}

// Approved reports whether the user has cleared the approval workflow.
func (u *RequestUser) Approved() bool {
	if u == nil {
		return false
	}
	return u.Status == entity.StatusApproved && u.Role != entity.RoleVisitor
}

// AuthMiddleware validates the bearer token and loads the current account.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "invalid authorization header format",
			})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "missing bearer token",
			})
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse jwt token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "token is invalid or expired",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.repo.GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    ErrCodeUserNotFound,
					Message: "account no longer exists",
				})
				return
			}
			logrus.WithError(err).WithField("user_id", claims.UserID).Error("failed to load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "failed to verify user",
			})
			return
		}

		requestUser := &RequestUser{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
			Status:      user.Status,
		}

		c.Set(currentUserContextKey, requestUser)
		c.Next()
	}
}

// RequireApproved guards endpoints that only approved accounts may use.
// Pending and rejected accounts can still authenticate; they just cannot
// pass this gate.
func (h *HTTPHandler) RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "authentication required",
			})
			return
		}
		if !user.Approved() {
			code := ErrCodePendingApproval
			message := "account is awaiting approval"
			if user.Status == entity.StatusRejected {
				code = ErrCodeAccountRejected
				message = "account registration was rejected"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    code,
				Message: message,
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin-only endpoints.
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "admin permission required",
			})
			return
		}
		c.Next()
	}
}

// RequireStaff guards record-management endpoints for teachers and admins.
func (h *HTTPHandler) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "staff permission required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored on the context.
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}
