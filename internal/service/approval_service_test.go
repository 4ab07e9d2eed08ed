package service

import (
	"context"
	"errors"
	"testing"

	"school/internal/entity"
	"school/internal/model"
)

// seedAdmin inserts an approved admin account directly.
func seedAdmin(t *testing.T, repo model.Repository) *entity.DbUser {
	t.Helper()
	admin := &entity.DbUser{
		Email:        "admin@example.com",
		PasswordHash: "irrelevant",
		DisplayName:  "Head Admin",
		Role:         entity.RoleAdmin,
		Status:       entity.StatusApproved,
	}
	if err := repo.CreateUser(context.Background(), admin); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

// signup runs a registration and returns the pending account.
func signup(t *testing.T, repo model.Repository, email, name string) *entity.DbUser {
	t.Helper()
	user, err := NewAccountService(repo).Register(context.Background(), entity.SignupRequest{
		Email:    email,
		Name:     name,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("signup for %s failed: %v", email, err)
	}
	return user
}

func TestApproveAssignsRoleAndResolvesNotification(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewApprovalService(repo)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	pending := signup(t, repo, "alice@example.com", "Alice")

	approved, err := svc.Approve(ctx, pending.ID, entity.RoleStudent, admin.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Role != entity.RoleStudent {
		t.Errorf("expected role student, got %q", approved.Role)
	}
	if approved.Status != entity.StatusApproved {
		t.Errorf("expected status approved, got %q", approved.Status)
	}

	stored, err := repo.GetUserByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !stored.Approved() {
		t.Error("stored user must be approved")
	}

	notifications, err := repo.ListNotifications(ctx, false)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
	resolved := notifications[0]
	if !resolved.IsRead {
		t.Error("notification must be marked read after approval")
	}
	if resolved.ResolvedAt == nil {
		t.Error("notification must carry a resolution timestamp")
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != admin.ID {
		t.Error("notification must record the approving admin")
	}

	unread, err := repo.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("list unread notifications: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unresolved notifications, got %d", len(unread))
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewApprovalService(repo)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	pending := signup(t, repo, "alice@example.com", "Alice")

	if _, err := svc.Approve(ctx, pending.ID, entity.RoleStudent, admin.ID); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	// The second approval finds no open notification and must still succeed.
	approved, err := svc.Approve(ctx, pending.ID, entity.RoleTeacher, admin.ID)
	if err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if approved.Role != entity.RoleTeacher {
		t.Errorf("expected role teacher after re-approval, got %q", approved.Role)
	}
}

func TestRejectKeepsRole(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewApprovalService(repo)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	pending := signup(t, repo, "bob@example.com", "Bob")

	rejected, err := svc.Reject(ctx, pending.ID, admin.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != entity.StatusRejected {
		t.Errorf("expected status rejected, got %q", rejected.Status)
	}
	if rejected.Role != entity.RoleVisitor {
		t.Errorf("rejection must not change the role, got %q", rejected.Role)
	}
	if rejected.Approved() {
		t.Error("rejected user must not be approved")
	}

	unread, err := repo.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("list unread notifications: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unresolved notifications after rejection, got %d", len(unread))
	}
}

func TestApproveRequiresAdminActor(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewApprovalService(repo)
	ctx := context.Background()

	seedAdmin(t, repo)
	pending := signup(t, repo, "alice@example.com", "Alice")
	outsider := signup(t, repo, "mallory@example.com", "Mallory")

	tests := []struct {
		name    string
		actorID uint
	}{
		{"NonAdminActor", outsider.ID},
		{"UnknownActor", 9999},
		{"ZeroActor", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Approve(ctx, pending.ID, entity.RoleStudent, tt.actorID)
			if !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}

	// The target must be untouched after every failed attempt.
	stored, err := repo.GetUserByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != entity.RoleVisitor || stored.Status != entity.StatusPending {
		t.Errorf("target was modified by forbidden attempts: role=%q status=%q", stored.Role, stored.Status)
	}
	unread, err := repo.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("list unread notifications: %v", err)
	}
	if len(unread) != 2 {
		t.Errorf("expected both notifications unresolved, got %d resolved state", len(unread))
	}
}

func TestApproveRejectsUnknownUserAndRole(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewApprovalService(repo)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	pending := signup(t, repo, "alice@example.com", "Alice")

	if _, err := svc.Approve(ctx, 12345, entity.RoleStudent, admin.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
	if _, err := svc.Approve(ctx, pending.ID, entity.RoleOwner, admin.ID); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole for owner role, got %v", err)
	}
	if _, err := svc.Approve(ctx, pending.ID, entity.Role("headmaster"), admin.ID); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole for made-up role, got %v", err)
	}
}

// brokenResolveRepo wraps a Repository so that ResolveNotification fails
// inside transactions. Used to prove the approval write rolls back as a
// unit.
type brokenResolveRepo struct {
	model.Repository
}

func (b *brokenResolveRepo) Transaction(ctx context.Context, fn func(model.Repository) error) error {
	return b.Repository.Transaction(ctx, func(tx model.Repository) error {
		return fn(&brokenResolveRepo{Repository: tx})
	})
}

func (b *brokenResolveRepo) ResolveNotification(ctx context.Context, userID, resolverID uint) (*entity.DbAdminNotification, error) {
	return nil, errors.New("simulated resolve failure")
}

func TestApproveRollsBackWhenResolveFails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	pending := signup(t, repo, "alice@example.com", "Alice")

	svc := NewApprovalService(&brokenResolveRepo{Repository: repo})
	_, err := svc.Approve(ctx, pending.ID, entity.RoleStudent, admin.ID)
	if err == nil {
		t.Fatal("expected approve to fail when the notification resolve fails")
	}

	// The user row update must have been rolled back with it.
	stored, err := repo.GetUserByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != entity.RoleVisitor {
		t.Errorf("role leaked through failed transaction: %q", stored.Role)
	}
	if stored.Status != entity.StatusPending {
		t.Errorf("status leaked through failed transaction: %q", stored.Status)
	}
}

func TestApprovalScenario(t *testing.T) {
	repo := newTestRepo(t)
	accounts := NewAccountService(repo)
	approvals := NewApprovalService(repo)
	ctx := context.Background()

	admin := seedAdmin(t, repo)
	alice := signup(t, repo, "alice@example.com", "Alice")
	bob := signup(t, repo, "bob@example.com", "Bob")

	if _, err := approvals.Approve(ctx, alice.ID, entity.RoleStudent, admin.ID); err != nil {
		t.Fatalf("approve alice: %v", err)
	}
	if _, err := approvals.Reject(ctx, bob.ID, admin.ID); err != nil {
		t.Fatalf("reject bob: %v", err)
	}

	aliceStored, err := accounts.Authenticate(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("alice login: %v", err)
	}
	if !accounts.IsApproved(aliceStored) {
		t.Error("alice should be approved")
	}

	// Bob can still authenticate but stays locked out.
	bobStored, err := accounts.Authenticate(ctx, "bob@example.com", "password123")
	if err != nil {
		t.Fatalf("bob login: %v", err)
	}
	if accounts.IsApproved(bobStored) {
		t.Error("bob must not be approved after rejection")
	}

	pendingUsers, err := repo.ListPendingUsers(ctx)
	if err != nil {
		t.Fatalf("list pending users: %v", err)
	}
	if len(pendingUsers) != 0 {
		t.Errorf("expected empty pending queue, got %d entries", len(pendingUsers))
	}
	unread, err := repo.ListNotifications(ctx, true)
	if err != nil {
		t.Fatalf("list unread notifications: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected all notifications resolved, got %d", len(unread))
	}
}
