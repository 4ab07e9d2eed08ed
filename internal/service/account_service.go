package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"school/internal/auth"
	"school/internal/entity"
	"school/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountService owns signup and login for the credential store.
type AccountService struct {
	repo model.Repository
}

// NewAccountService creates the account service.
func NewAccountService(repo model.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// Register creates a pending visitor account and its admin notification in
// one transaction: either both rows exist afterwards or neither does.
// Duplicate emails fail with ErrDuplicateEmail via the unique index, so two
// concurrent signups for the same address cannot both succeed.
func (s *AccountService) Register(ctx context.Context, req entity.SignupRequest) (*entity.DbUser, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("account service not initialised")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	password := strings.TrimSpace(req.Password)
	if email == "" || name == "" || password == "" {
		return nil, fmt.Errorf("email, name and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  name,
		Role:         entity.RoleVisitor,
		Status:       entity.StatusPending,
		Age:          req.Age,
		Address:      strings.TrimSpace(req.Address),
		Gender:       strings.TrimSpace(req.Gender),
		Registration: "USER_" + uuid.NewString(),
		RegisterDate: &now,
	}

	err = s.repo.Transaction(ctx, func(tx model.Repository) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		notification := &entity.DbAdminNotification{
			UserID:           user.ID,
			NotificationType: entity.NotificationTypeNewRegistration,
			Message:          fmt.Sprintf("New user %s (%s) signed up and awaits approval.", user.DisplayName, user.Email),
		}
		return tx.CreateNotification(ctx, notification)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the account. Unknown
// emails fail with ErrNotFound, mismatched passwords with
// ErrBadCredentials; callers must present both identically. A throwaway
// hash comparison runs on the unknown-email path so the two cases are not
// separable by timing. No approval check happens here: pending users may
// log in and see the pending-approval view.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.DbUser, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("account service not initialised")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// IsApproved is the gate for every protected feature except the profile and
// pending-approval views themselves.
func (s *AccountService) IsApproved(user *entity.DbUser) bool {
	return user.Approved()
}
