package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("image not found")
	ErrInvalidKey = errors.New("invalid image key")
)

// ImageStore keeps uploaded return, checklist and document images for the
// dev settlement service.
type ImageStore interface {
	// Save stores the image under a fresh key and returns that key. The
	// extension of fileName is kept so downloads get the right content type.
	Save(ctx context.Context, prefix, fileName string, r io.Reader) (string, error)

	// URL is the public download address of key.
	URL(key string) string

	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)

	Delete(ctx context.Context, key string) error
}
