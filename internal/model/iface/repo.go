package iface

import (
	"context"

	"school/internal/entity"
)

// Repository defines the database operations.
type Repository interface {
	// Transaction runs fn against a Repository bound to a database
	// transaction. If fn returns an error the transaction is rolled back
	// and nothing it did is visible.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	ListPendingUsers(ctx context.Context) ([]entity.DbUser, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Admin notifications
	CreateNotification(ctx context.Context, notification *entity.DbAdminNotification) error
	ListNotifications(ctx context.Context, onlyUnread bool) ([]entity.DbAdminNotification, error)
	ResolveNotification(ctx context.Context, userID, resolverID uint) (*entity.DbAdminNotification, error)

	// Messages
	CreateMessage(ctx context.Context, message *entity.DbMessage) error
	GetMessage(ctx context.Context, id uint) (*entity.DbMessage, error)
	ListMessagesForUser(ctx context.Context, userID uint) ([]entity.DbMessage, error)
	MarkMessageRead(ctx context.Context, id uint) error

	// Email log
	CreateEmailLog(ctx context.Context, log *entity.DbEmailLog) error
	ListEmailLogs(ctx context.Context) ([]entity.DbEmailLog, error)

	// Grades
	CreateGrade(ctx context.Context, grade *entity.DbGrade) error
	GetGrade(ctx context.Context, id uint) (*entity.DbGrade, error)
	UpdateGrade(ctx context.Context, id uint, updates entity.GradeUpdates) error
	DeleteGrade(ctx context.Context, id uint) error
	ListGradesForStudent(ctx context.Context, studentID uint) ([]entity.DbGrade, error)
	GradeMeanForStudent(ctx context.Context, studentID uint) (float64, error)

	// Absences
	CreateAbsence(ctx context.Context, absence *entity.DbAbsence) error
	GetAbsence(ctx context.Context, id uint) (*entity.DbAbsence, error)
	UpdateAbsence(ctx context.Context, id uint, updates entity.AbsenceUpdates) error
	DeleteAbsence(ctx context.Context, id uint) error
	ListAbsencesForStudent(ctx context.Context, studentID uint) ([]entity.DbAbsence, error)

	// Payments
	CreatePayment(ctx context.Context, payment *entity.DbPayment) error
	GetPayment(ctx context.Context, id uint) (*entity.DbPayment, error)
	UpdatePayment(ctx context.Context, id uint, updates entity.PaymentUpdates) error
	DeletePayment(ctx context.Context, id uint) error
	ListPaymentsForStudent(ctx context.Context, studentID uint) ([]entity.DbPayment, error)

	// Majors and subjects
	CreateMajor(ctx context.Context, major *entity.DbMajor) error
	UpdateMajor(ctx context.Context, id uint, updates entity.MajorUpdates) error
	DeleteMajor(ctx context.Context, id uint) error
	ListMajors(ctx context.Context) ([]entity.DbMajor, error)
	CreateSubject(ctx context.Context, subject *entity.DbSubject) error
	UpdateSubject(ctx context.Context, id uint, updates entity.SubjectUpdates) error
	DeleteSubject(ctx context.Context, id uint) error
	ListSubjects(ctx context.Context) ([]entity.DbSubject, error)
}
