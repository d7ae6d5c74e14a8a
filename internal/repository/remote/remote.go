// Package remote implements the repository interfaces on top of the
// settlement service data sources. Adapters only reshape inputs; they never
// validate, cache or retry.
package remote

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"evrental-staff-core/internal/domain"
)

// Clock supplies the timestamp used in synthesized upload file names.
type Clock func() time.Time

func (c Clock) millis() int64 {
	if c == nil {
		return time.Now().UnixMilli()
	}
	return c().UnixMilli()
}

// returnImageParts wraps local image paths as file parts named
// return_<unixMillis>_<index><ext>. All parts of one call share a timestamp.
func returnImageParts(clock Clock, field string, paths []string) []domain.FilePart {
	ts := clock.millis()
	parts := make([]domain.FilePart, 0, len(paths))
	for i, p := range paths {
		parts = append(parts, domain.FilePart{
			Field:    field,
			Path:     p,
			FileName: fmt.Sprintf("return_%d_%d%s", ts, i, extOf(p)),
		})
	}
	return parts
}

func namedPart(clock Clock, prefix, field, path string) *domain.FilePart {
	if path == "" {
		return nil
	}
	return &domain.FilePart{
		Field:    field,
		Path:     path,
		FileName: fmt.Sprintf("%s_%d%s", prefix, clock.millis(), extOf(path)),
	}
}

// extOf keeps the source extension, defaulting to .jpg for camera captures
// that have none.
func extOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ".jpg"
	}
	return ext
}
