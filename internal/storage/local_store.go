package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"evrental-staff-core/internal/logger"

	"github.com/google/uuid"
)

// LocalStore implements ImageStore on the local filesystem.
type LocalStore struct {
	baseURL   string // e.g. "http://localhost:8088"
	imagesDir string
}

func NewLocalStore(baseURL, uploadsDir string) (*LocalStore, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalStore{baseURL: strings.TrimRight(baseURL, "/"), imagesDir: imagesDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, prefix, fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	key := uuid.New().String() + ext
	if prefix != "" {
		key = prefix + "_" + key
	}

	fullPath, err := s.path(key)
	if err != nil {
		return "", err
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, r)
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	logger.Debug("Image stored", "key", key, "bytes", n)
	return key, nil
}

func (s *LocalStore) URL(key string) string {
	return s.baseURL + "/api/v1/download/" + url.PathEscape(key)
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, 0, err
	}
	file, err := os.Open(fullPath)
	if os.IsNotExist(err) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, err
	}
	return file, info.Size(), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path keeps keys flat inside imagesDir.
func (s *LocalStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.imagesDir, key), nil
}

// ContentType guesses an image MIME type from the key's extension.
func ContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
