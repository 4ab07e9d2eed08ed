package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"school/internal/auth"
	"school/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListUsers returns accounts filtered by role, status or keyword, with
// pagination. Admin only.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "failed to list users")
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, h.makeUserSummary(&users[i]))
	}
	c.JSON(http.StatusOK, entity.UserListResponse{Users: summaries, Meta: meta})
}

// GetUser returns one account. Admin only.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	userID, ok := recordIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to load user")
		InternalError(c, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, h.makeUserSummary(user))
}

// CreateStudent creates an account with a chosen role, already approved.
// This is the admin path that bypasses the signup workflow, so no
// notification row is written. Admin only.
func (h *HTTPHandler) CreateStudent(c *gin.Context) {
	var req entity.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	role := entity.ParseRole(req.Role)
	if role == "" || role == entity.RoleOwner || role == entity.RoleVisitor {
		BadRequest(c, ErrCodeInvalidRole, "role cannot be assigned")
		return
	}

	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to create account")
		return
	}

	registration := strings.TrimSpace(req.Registration)
	if registration == "" {
		registration = "USER_" + uuid.NewString()
	}

	now := time.Now().UTC()
	user := &entity.DbUser{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.Name),
		Role:         role,
		Status:       entity.StatusApproved,
		Age:          req.Age,
		Address:      strings.TrimSpace(req.Address),
		Registration: registration,
		Gender:       strings.TrimSpace(req.Gender),
		Major:        strings.TrimSpace(req.Major),
		Year:         req.Year,
		RegisterDate: &now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to create account")
		InternalError(c, "failed to create account")
		return
	}
	c.JSON(http.StatusCreated, h.makeUserSummary(user))
}

// UpdateStudent edits an account's attributes, role included. The owner
// account is off limits. Admin only.
func (h *HTTPHandler) UpdateStudent(c *gin.Context) {
	userID, ok := recordIDParam(c)
	if !ok {
		return
	}

	var req entity.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	target, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to load user")
		InternalError(c, "failed to update account")
		return
	}
	if target.Role == entity.RoleOwner {
		ErrorResponse(c, http.StatusForbidden, ErrCodeProtectedUser, "the owner account cannot be modified")
		return
	}

	updates := entity.UserUpdates{
		DisplayName:  trimmedOrNil(req.Name),
		Phone:        trimmedOrNil(req.Phone),
		Age:          req.Age,
		Address:      trimmedOrNil(req.Address),
		Registration: trimmedOrNil(req.Registration),
		Gender:       trimmedOrNil(req.Gender),
		Major:        trimmedOrNil(req.Major),
		Year:         req.Year,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			MissingField(c, "email")
			return
		}
		updates.Email = &email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(strings.TrimSpace(*req.Password))
		if err != nil {
			logrus.WithError(err).Error("failed to hash password")
			InternalError(c, "failed to update account")
			return
		}
		updates.PasswordHash = &hash
	}
	if req.Role != nil {
		role := entity.ParseRole(*req.Role)
		if role == "" || role == entity.RoleOwner {
			BadRequest(c, ErrCodeInvalidRole, "role cannot be assigned")
			return
		}
		updates.Role = &role
	}
	if req.RegisterDate != nil {
		parsed, err := parseDate(strings.TrimSpace(*req.RegisterDate))
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "register_date must be YYYY-MM-DD")
			return
		}
		updates.RegisterDate = &parsed
	}
	if updates.IsEmpty() {
		BadRequest(c, ErrCodeInvalidRequest, "no fields to update")
		return
	}

	if err := h.repo.UpdateUser(ctx, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to update account")
		InternalError(c, "failed to update account")
		return
	}

	updated, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload account")
		InternalError(c, "failed to update account")
		return
	}
	c.JSON(http.StatusOK, h.makeUserSummary(updated))
}

// DeleteStudent removes an account. The owner account and the acting
// admin's own account are off limits. Admin only.
func (h *HTTPHandler) DeleteStudent(c *gin.Context) {
	actor := CurrentUser(c)
	userID, ok := recordIDParam(c)
	if !ok {
		return
	}
	if actor != nil && actor.ID == userID {
		ErrorResponse(c, http.StatusForbidden, ErrCodeProtectedUser, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	target, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to load user")
		InternalError(c, "failed to delete account")
		return
	}
	if target.Role == entity.RoleOwner {
		ErrorResponse(c, http.StatusForbidden, ErrCodeProtectedUser, "the owner account cannot be deleted")
		return
	}

	if err := h.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to delete account")
		InternalError(c, "failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}
