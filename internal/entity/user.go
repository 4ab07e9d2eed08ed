package entity

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	// RoleOwner is the single bootstrap account; it carries every admin
	// permission and cannot be modified or deleted through the API.
	RoleOwner Role = "owner"
)

// ParseRole normalises a raw role string; returns "" for unknown values.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleVisitor:
		return RoleVisitor
	case RoleStudent:
		return RoleStudent
	case RoleTeacher:
		return RoleTeacher
	case RoleAdmin:
		return RoleAdmin
	case RoleOwner:
		return RoleOwner
	default:
		return ""
	}
}

// IsAdmin reports whether the role carries admin permissions.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleOwner
}

// IsStaff reports whether the role may manage student records.
func (r Role) IsStaff() bool {
	return r == RoleTeacher || r.IsAdmin()
}

// Status is the approval disposition of an account.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255)" json:"display_name"`
	Role         Role      `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	Status       Status    `gorm:"column:status;type:varchar(50);index;not null" json:"status"`

	// Profile attributes; inert with respect to the approval workflow.
	Age          int        `gorm:"column:age" json:"age"`
	Address      string     `gorm:"column:address;type:varchar(1000)" json:"address"`
	Registration string     `gorm:"column:registration;type:varchar(100)" json:"registration"`
	Gender       string     `gorm:"column:gender;type:varchar(50)" json:"gender"`
	About        string     `gorm:"column:about;type:varchar(1000)" json:"about"`
	Phone        string     `gorm:"column:phone;type:varchar(100)" json:"phone"`
	Major        string     `gorm:"column:major;type:varchar(100)" json:"major"`
	Year         int        `gorm:"column:year" json:"year"`
	PicturePath  string     `gorm:"column:picture_path;type:varchar(500)" json:"picture_path"`
	RegisterDate *time.Time `gorm:"column:register_date" json:"register_date,omitempty"`
}

// TableName overrides the default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// Approved reports whether the account has cleared the approval workflow.
// Visitors are never approved regardless of status.
func (u *DbUser) Approved() bool {
	if u == nil {
		return false
	}
	return u.Status == StatusApproved && u.Role != RoleVisitor
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	Age          int        `json:"age,omitempty"`
	Address      string     `json:"address,omitempty"`
	Registration string     `json:"registration,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	About        string     `json:"about,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Major        string     `json:"major,omitempty"`
	Year         int        `json:"year,omitempty"`
	PictureURL   string     `json:"picture_url,omitempty"`
	RegisterDate *time.Time `json:"register_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Role    string `json:"role" form:"role"`
	Status  string `json:"status" form:"status"`
	Keyword string `json:"keyword" form:"keyword"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Age      int    `json:"age,omitempty"`
	Address  string `json:"address,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember,omitempty"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type ProfileUpdateRequest struct {
	Email        *string `json:"email,omitempty"`
	DisplayName  *string `json:"display_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Address      *string `json:"address,omitempty"`
	Registration *string `json:"registration,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	About        *string `json:"about,omitempty"`
	Major        *string `json:"major,omitempty"`
	Year         *int    `json:"year,omitempty"`
	RegisterDate *string `json:"register_date,omitempty"`
}

// StudentCreateRequest is the admin path that bypasses the approval
// workflow: the account is created with the chosen role, already approved.
type StudentCreateRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required"`
	Age          int    `json:"age,omitempty"`
	Address      string `json:"address,omitempty"`
	Registration string `json:"registration,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Major        string `json:"major,omitempty"`
	Year         int    `json:"year,omitempty"`
}

type StudentUpdateRequest struct {
	Email        *string `json:"email,omitempty"`
	Name         *string `json:"name,omitempty"`
	Password     *string `json:"password,omitempty"`
	Role         *string `json:"role,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Address      *string `json:"address,omitempty"`
	Registration *string `json:"registration,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	Major        *string `json:"major,omitempty"`
	Year         *int    `json:"year,omitempty"`
	RegisterDate *string `json:"register_date,omitempty"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta"`
}
