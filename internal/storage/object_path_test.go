package storage

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizePathSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Avatars", "avatars"},
		{"  spaced  ", "spaced"},
		{"mixed_Case-123", "mixed_case-123"},
		{"../../etc/passwd", "etcpasswd"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := sanitizePathSegment(tt.input); got != tt.expected {
			t.Errorf("sanitizePathSegment(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{".PNG", "png"},
		{"jpg", "jpg"},
		{"", "bin"},
		{" .webp ", "webp"},
	}
	for _, tt := range tests {
		if got := normalizeExtension(tt.input); got != tt.expected {
			t.Errorf("normalizeExtension(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildObjectPath(t *testing.T) {
	path := buildObjectPath("avatars", "My Photo", "PNG")
	if !strings.HasPrefix(path, "avatars/") {
		t.Errorf("expected category prefix, got %q", path)
	}
	if !strings.HasSuffix(path, "my-photo.png") {
		t.Errorf("expected sanitized file name, got %q", path)
	}
	if strings.Contains(path, "..") {
		t.Errorf("path must not contain traversal segments: %q", path)
	}
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		prefix   string
		key      string
		expected string
	}{
		{"", "a/b.png", "a/b.png"},
		{"uploads", "a/b.png", "uploads/a/b.png"},
		{"/uploads/", "/a/b.png", "uploads/a/b.png"},
	}
	for _, tt := range tests {
		if got := joinPrefix(tt.prefix, tt.key); got != tt.expected {
			t.Errorf("joinPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.expected)
		}
	}
}

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}

	path, err := store.Save(context.Background(), []byte("payload"), SaveOptions{
		Category:  "avatars",
		Extension: "png",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(path, "avatars/") {
		t.Errorf("unexpected stored path %q", path)
	}

	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "avatars"}); err == nil {
		t.Error("expected an error for an empty payload")
	}
}
