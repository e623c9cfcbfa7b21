package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("файл не найден")
	ErrInvalidName = errors.New("недопустимое имя файла")
)

type ObjectInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Storage keeps uploaded files under slash-separated relative names such as
// "1700000000000-uuid.jpg" or "instagram-cache/instagram-1.jpg".
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (int64, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, *ObjectInfo, error)
	Stat(ctx context.Context, name string) (*ObjectInfo, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// CleanName validates a storage name and rejects anything that could escape the root.
func CleanName(name string) (string, error) {
	if name == "" || name == "." || strings.Contains(name, `\`) || !fs.ValidPath(name) {
		return "", ErrInvalidName
	}
	return name, nil
}
