package service

import (
	"context"
	"errors"
	"testing"

	"school/internal/entity"
	"school/internal/model"
	repoSql "school/internal/model/sql"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestRepo(t *testing.T) model.Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.DbUser{},
		&entity.DbAdminNotification{},
		&entity.DbMessage{},
		&entity.DbEmailLog{},
		&entity.DbGrade{},
		&entity.DbAbsence{},
		&entity.DbPayment{},
		&entity.DbMajor{},
		&entity.DbSubject{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return repoSql.NewGormRepository(db)
}

func TestRegisterCreatesPendingVisitor(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, entity.SignupRequest{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != entity.RoleVisitor {
		t.Errorf("expected role visitor, got %q", user.Role)
	}
	if user.Status != entity.StatusPending {
		t.Errorf("expected status pending, got %q", user.Status)
	}
	if user.Approved() {
		t.Error("freshly registered user must not be approved")
	}
	if user.Registration == "" {
		t.Error("expected a generated registration number")
	}

	notifications, err := repo.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected exactly one unresolved notification, got %d", len(notifications))
	}
	if notifications[0].UserID != user.ID {
		t.Errorf("notification references user %d, want %d", notifications[0].UserID, user.ID)
	}
	if notifications[0].NotificationType != entity.NotificationTypeNewRegistration {
		t.Errorf("unexpected notification type %q", notifications[0].NotificationType)
	}
	if notifications[0].ResolvedAt != nil || notifications[0].ResolvedBy != nil {
		t.Error("fresh notification must not carry resolution stamps")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, entity.SignupRequest{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err = svc.Register(ctx, entity.SignupRequest{
		Email:    "BOB@example.com",
		Name:     "Impostor",
		Password: "password456",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The failed signup must leave no trace: one user, one notification.
	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one user after duplicate signup, got %d", count)
	}
	notifications, err := repo.ListNotifications(ctx, false)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Errorf("expected one notification, got %d", len(notifications))
	}

	kept, err := repo.GetUserByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("original account lost: %v", err)
	}
	if kept.ID != first.ID || kept.DisplayName != "Bob" {
		t.Error("original account was altered by the duplicate signup")
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAccountService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, entity.SignupRequest{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "open sesame",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("CorrectPassword", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "carol@example.com", "open sesame")
		if err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("authenticated wrong account: %d", user.ID)
		}
	})

	t.Run("PendingUserCanStillLogIn", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "carol@example.com", "open sesame")
		if err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}
		if user.Status != entity.StatusPending {
			t.Errorf("expected pending status, got %q", user.Status)
		}
		if svc.IsApproved(user) {
			t.Error("pending visitor must not count as approved")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "carol@example.com", "wrong")
		if !errors.Is(err, ErrBadCredentials) {
			t.Errorf("expected ErrBadCredentials, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		if !errors.Is(err, ErrBadCredentials) {
			t.Errorf("expected ErrBadCredentials, got %v", err)
		}
	})
}

func TestIsApproved(t *testing.T) {
	svc := NewAccountService(newTestRepo(t))

	tests := []struct {
		name     string
		role     entity.Role
		status   entity.Status
		expected bool
	}{
		{"ApprovedStudent", entity.RoleStudent, entity.StatusApproved, true},
		{"ApprovedTeacher", entity.RoleTeacher, entity.StatusApproved, true},
		{"ApprovedAdmin", entity.RoleAdmin, entity.StatusApproved, true},
		{"ApprovedVisitor", entity.RoleVisitor, entity.StatusApproved, false},
		{"PendingVisitor", entity.RoleVisitor, entity.StatusPending, false},
		{"RejectedVisitor", entity.RoleVisitor, entity.StatusRejected, false},
		{"PendingStudent", entity.RoleStudent, entity.StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &entity.DbUser{Role: tt.role, Status: tt.status}
			if got := svc.IsApproved(user); got != tt.expected {
				t.Errorf("IsApproved(%s/%s) = %v, want %v", tt.role, tt.status, got, tt.expected)
			}
		})
	}
}
