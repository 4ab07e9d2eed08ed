package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"school/internal/entity"
	"school/internal/model/iface"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newRepo(t *testing.T) *GormRepository {
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
	return NewGormRepository(db)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := &entity.DbUser{Email: "dup@example.com", PasswordHash: "x", Role: entity.RoleVisitor, Status: entity.StatusPending}
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := &entity.DbUser{Email: "dup@example.com", PasswordHash: "y", Role: entity.RoleVisitor, Status: entity.StatusPending}
	err := repo.CreateUser(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestUpdateUserMissingRow(t *testing.T) {
	repo := newRepo(t)
	name := "Ghost"
	err := repo.UpdateUser(context.Background(), 42, entity.UserUpdates{DisplayName: &name})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestResolveNotificationPicksOldestUnresolved(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user := &entity.DbUser{Email: "u@example.com", PasswordHash: "x", Role: entity.RoleVisitor, Status: entity.StatusPending}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < 2; i++ {
		n := &entity.DbAdminNotification{UserID: user.ID, Message: "signup"}
		if err := repo.CreateNotification(ctx, n); err != nil {
			t.Fatalf("create notification: %v", err)
		}
	}

	first, err := repo.ResolveNotification(ctx, user.ID, 7)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := repo.ResolveNotification(ctx, user.ID, 7)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.ID >= second.ID {
		t.Errorf("resolution order wrong: %d then %d", first.ID, second.ID)
	}
	if first.ResolvedBy == nil || *first.ResolvedBy != 7 {
		t.Error("resolver not recorded")
	}

	_, err = repo.ResolveNotification(ctx, user.ID, 7)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound once all are resolved, got %v", err)
	}
}

func TestResolveNotificationMissIsNotFound(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.ResolveNotification(context.Background(), 99, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestListMessagesForUserCoversBothDirections(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	messages := []entity.DbMessage{
		{FromID: 1, ToID: 2, Content: "to bob", SentAt: base.Add(-2 * time.Hour)},
		{FromID: 2, ToID: 1, Content: "to alice", SentAt: base.Add(-1 * time.Hour)},
		{FromID: 2, ToID: 3, Content: "unrelated", SentAt: base},
	}
	for i := range messages {
		if err := repo.CreateMessage(ctx, &messages[i]); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	got, err := repo.ListMessagesForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages for user 1, got %d", len(got))
	}
	if got[0].Content != "to alice" {
		t.Errorf("expected newest first, got %q", got[0].Content)
	}
	if got[0].Priority != entity.PriorityNormal {
		t.Errorf("expected defaulted priority, got %q", got[0].Priority)
	}
}

func TestGradeMeanForStudent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	mean, err := repo.GradeMeanForStudent(ctx, 5)
	if err != nil {
		t.Fatalf("mean without grades: %v", err)
	}
	if mean != 0 {
		t.Errorf("expected zero mean without grades, got %f", mean)
	}

	for _, value := range []float64{10, 14, 18} {
		grade := &entity.DbGrade{StudentID: 5, Subject: "maths", Grade: value, GradedOn: time.Now()}
		if err := repo.CreateGrade(ctx, grade); err != nil {
			t.Fatalf("create grade: %v", err)
		}
	}
	// A different student's grade must not affect the mean.
	other := &entity.DbGrade{StudentID: 6, Subject: "maths", Grade: 2, GradedOn: time.Now()}
	if err := repo.CreateGrade(ctx, other); err != nil {
		t.Fatalf("create grade: %v", err)
	}

	mean, err = repo.GradeMeanForStudent(ctx, 5)
	if err != nil {
		t.Fatalf("mean with grades: %v", err)
	}
	if mean != 14 {
		t.Errorf("expected mean 14, got %f", mean)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx iface.Repository) error {
		major := &entity.DbMajor{Name: "Physics", DurationYears: 3}
		if err := tx.CreateMajor(ctx, major); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the injected error, got %v", err)
	}

	majors, err := repo.ListMajors(ctx)
	if err != nil {
		t.Fatalf("list majors: %v", err)
	}
	if len(majors) != 0 {
		t.Errorf("expected rollback to discard the major, found %d rows", len(majors))
	}
}

func TestTransactionCommits(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx iface.Repository) error {
		return tx.CreateMajor(ctx, &entity.DbMajor{Name: "History", DurationYears: 3})
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	majors, err := repo.ListMajors(ctx)
	if err != nil {
		t.Fatalf("list majors: %v", err)
	}
	if len(majors) != 1 {
		t.Errorf("expected the committed major, found %d rows", len(majors))
	}
}
