package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school/internal/auth"
	"school/internal/config"
	"school/internal/entity"
)

// SeedOwnerAccount creates the bootstrap owner account when the users table
// is empty and the bootstrap credentials are configured. Subsequent starts
// are no-ops.
func SeedOwnerAccount(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapOwnerEmail))
	password := strings.TrimSpace(cfg.BootstrapOwnerPassword)
	if email == "" || password == "" {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	now := time.Now().UTC()
	owner := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(cfg.BootstrapOwnerName),
		Role:         entity.RoleOwner,
		Status:       entity.StatusApproved,
		RegisterDate: &now,
	}
	return repo.CreateUser(ctx, owner)
}
