package api

import (
	"strings"
	"time"

	"school/internal/auth"
	"school/internal/config"
	"school/internal/mail"
	"school/internal/model"
	"school/internal/service"
	"school/internal/storage"
)

// HTTPHandler carries the dependencies of all HTTP endpoints.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager
	mailer            mail.Sender

	accountService  *service.AccountService
	approvalService *service.ApprovalService
}

// NewHTTPHandler creates the handler and its service layer.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, mailer mail.Sender) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		mailer:            mailer,
		accountService:    service.NewAccountService(repo),
		approvalService:   service.NewApprovalService(repo),
	}

	return handler, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// publicURL turns a stored relative path into a client-facing URL.
func (h *HTTPHandler) publicURL(storedPath string) string {
	trimmed := strings.TrimSpace(storedPath)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return h.storagePublicBase + "/" + strings.TrimLeft(trimmed, "/")
}
