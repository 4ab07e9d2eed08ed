package storage

import (
	"context"
	"fmt"
	"strings"

	"school/internal/config"
)

const (
	// TypeLocal stores uploads on the local filesystem.
	TypeLocal = "local"
	// TypeS3 targets Amazon S3 or any compatible backend (R2, MinIO) via a
	// custom endpoint.
	TypeS3 = "s3"
	// TypeOSS targets Aliyun OSS.
	TypeOSS = "oss"
	// TypeCOS targets Tencent COS.
	TypeCOS = "cos"
)

// SaveOptions controls how a backend persists an upload.
//
// Category groups files on disk (profile pictures use "avatars"), Extension
// hints the preferred file extension without the leading dot, and BaseName
// overrides the generated file name.
type SaveOptions struct {
	Category     string
	Extension    string
	BaseName     string
	SkipIfExists bool
}

// Storage persists binary data and returns a backend-specific identifier
// (a relative path for local storage, an object key for the cloud drivers).
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by backends exposing a local
// directory that can be served over HTTP directly.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the configured storage backend.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
