package service

import (
	"context"
	"errors"
	"fmt"

	"school/internal/entity"
	"school/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ApprovalService moves a user through the approval workflow:
// PENDING (role=visitor, status=pending) goes to APPROVED(role) or
// REJECTED, and the matching admin notification is closed out. Both states
// are terminal for the workflow; later role edits happen through the
// ordinary profile operations.
type ApprovalService struct {
	repo model.Repository
}

// NewApprovalService creates the approval service.
func NewApprovalService(repo model.Repository) *ApprovalService {
	return &ApprovalService{repo: repo}
}

// approvableRole validates the role an admin may hand out at approval time.
func approvableRole(role entity.Role) bool {
	switch role {
	case entity.RoleStudent, entity.RoleTeacher, entity.RoleAdmin:
		return true
	default:
		return false
	}
}

// checkActor loads the acting user and verifies admin permission. Every
// failure collapses into ErrForbidden; the caller learns nothing about
// whether the actor exists.
func (s *ApprovalService) checkActor(ctx context.Context, actorID uint) error {
	if actorID == 0 {
		return ErrForbidden
	}
	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Approve grants targetRole to the user and marks them approved, closing
// the open registration notification in the same transaction. There is no
// precondition on the current status: re-approving is idempotent and the
// notification resolve simply finds nothing the second time.
func (s *ApprovalService) Approve(ctx context.Context, userID uint, targetRole entity.Role, actorID uint) (*entity.DbUser, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("approval service not initialised")
	}
	if err := s.checkActor(ctx, actorID); err != nil {
		return nil, err
	}
	if !approvableRole(targetRole) {
		return nil, ErrInvalidRole
	}

	var approved *entity.DbUser
	err := s.repo.Transaction(ctx, func(tx model.Repository) error {
		user, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		status := entity.StatusApproved
		updates := entity.UserUpdates{
			Role:   &targetRole,
			Status: &status,
		}
		if err := tx.UpdateUser(ctx, user.ID, updates); err != nil {
			return err
		}

		if _, err := tx.ResolveNotification(ctx, user.ID, actorID); err != nil {
			// No open notification is expected on re-approval.
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		user.Role = targetRole
		user.Status = status
		approved = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    targetRole,
		"admin":   actorID,
	}).Info("user approved")
	return approved, nil
}

// Reject marks the user rejected, leaving the role untouched, and closes
// the open registration notification in the same transaction.
func (s *ApprovalService) Reject(ctx context.Context, userID uint, actorID uint) (*entity.DbUser, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("approval service not initialised")
	}
	if err := s.checkActor(ctx, actorID); err != nil {
		return nil, err
	}

	var rejected *entity.DbUser
	err := s.repo.Transaction(ctx, func(tx model.Repository) error {
		user, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		status := entity.StatusRejected
		updates := entity.UserUpdates{Status: &status}
		if err := tx.UpdateUser(ctx, user.ID, updates); err != nil {
			return err
		}

		if _, err := tx.ResolveNotification(ctx, user.ID, actorID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		user.Status = status
		rejected = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"admin":   actorID,
	}).Info("user rejected")
	return rejected, nil
}
