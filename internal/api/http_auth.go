package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"school/internal/entity"
	"school/internal/service"
	"school/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxPictureBytes = 5 << 20

// Signup creates a pending account. The caller gets a session token right
// away but stays locked out of the approved-only surface until an admin
// assigns a role.
func (h *HTTPHandler) Signup(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.accountService.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to register user")
		InternalError(c, "failed to register user")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to create token for user")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      h.makeUserSummary(user),
	})
}

// Login authenticates the credentials and issues a token. Unknown emails
// and wrong passwords produce the same response.
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.accountService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrBadCredentials) {
			logrus.WithField("email", req.Email).Warn("login attempt failed")
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		logrus.WithError(err).Error("login failed")
		InternalError(c, "failed to process login")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      h.makeUserSummary(user),
	})
}

// Me returns the full profile of the authenticated account, including the
// approval status so pending users can render the waiting view.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, h.makeUserSummary(dbUser))
}

// UpdateProfile lets any authenticated account edit its own profile
// attributes. Role and status are not reachable from here.
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := entity.UserUpdates{
		DisplayName:  trimmedOrNil(req.DisplayName),
		Phone:        trimmedOrNil(req.Phone),
		Age:          req.Age,
		Address:      trimmedOrNil(req.Address),
		Registration: trimmedOrNil(req.Registration),
		Gender:       trimmedOrNil(req.Gender),
		About:        trimmedOrNil(req.About),
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
	if req.RegisterDate != nil {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*req.RegisterDate))
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update profile")
		InternalError(c, "failed to update profile")
		return
	}

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reload profile")
		InternalError(c, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, h.makeUserSummary(dbUser))
}

// UploadPicture stores a new profile picture through the configured
// storage backend and records the resulting path on the account.
func (h *HTTPHandler) UploadPicture(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		BadRequest(c, ErrCodeUploadRejected, "picture file is required")
		return
	}
	if fileHeader.Size > maxPictureBytes {
		BadRequest(c, ErrCodeUploadRejected, "picture exceeds the size limit")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	switch ext {
	case "png", "jpg", "jpeg", "gif", "webp":
	default:
		BadRequest(c, ErrCodeUploadRejected, "unsupported picture format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded picture")
		InternalError(c, "failed to read picture")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPictureBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded picture")
		InternalError(c, "failed to read picture")
		return
	}
	if len(data) > maxPictureBytes {
		BadRequest(c, ErrCodeUploadRejected, "picture exceeds the size limit")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	storedPath, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  "avatars",
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to store picture")
		InternalError(c, "failed to store picture")
		return
	}

	updates := entity.UserUpdates{PicturePath: &storedPath}
	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to record picture path")
		InternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"picture_url": h.publicURL(storedPath)})
}

func (h *HTTPHandler) makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
		Status:       user.Status,
		Age:          user.Age,
		Address:      user.Address,
		Registration: user.Registration,
		Gender:       user.Gender,
		About:        user.About,
		Phone:        user.Phone,
		Major:        user.Major,
		Year:         user.Year,
		PictureURL:   h.publicURL(user.PicturePath),
		RegisterDate: user.RegisterDate,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
