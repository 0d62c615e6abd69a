package thumbs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filmoteca/internal/fileutil"
)

// ErrNotFound is returned by Backend.Open for names that are not stored.
var ErrNotFound = errors.New("thumbnail not found")

// Backend stores thumbnail files by name.
type Backend interface {
	Exists(ctx context.Context, name string) (bool, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileName is the stored name of the thumbnail for an image tag.
func FileName(tag string) string {
	return tag + ".jpg"
}

// ValidName reports whether name is a plain file name that cannot escape the
// thumbnail directory or bucket prefix.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}

// DirBackend stores thumbnails in a local directory.
type DirBackend struct {
	dir string
}

// NewDirBackend creates dir when needed and returns a backend rooted at it.
func NewDirBackend(dir string) (*DirBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("thumbnail directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail directory: %w", err)
	}
	return &DirBackend{dir: dir}, nil
}

func (b *DirBackend) path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("invalid thumbnail name %q", name)
	}
	return filepath.Join(b.dir, name), nil
}

func (b *DirBackend) Exists(_ context.Context, name string) (bool, error) {
	path, err := b.path(name)
	if err != nil {
		return false, err
	}
	return fileutil.Exists(path)
}

func (b *DirBackend) Put(_ context.Context, name string, data []byte) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

func (b *DirBackend) Delete(_ context.Context, name string) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove thumbnail: %w", err)
	}
	return nil
}

func (b *DirBackend) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path, err := b.path(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open thumbnail: %w", err)
	}
	return file, nil
}
