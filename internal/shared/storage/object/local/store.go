package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"filevault/internal/shared/storage/object"
)

// Store implements ObjectStore on top of an afero filesystem. Keys are paths
// relative to the filesystem root.
type Store struct {
	fs afero.Fs
}

// New creates a local object store rooted at baseDir, creating it if needed.
func New(baseDir string) (*Store, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve store dir: %w", err)
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return NewWithFs(afero.NewBasePathFs(osFs, abs)), nil
}

// NewWithFs wraps an existing filesystem, e.g. afero.NewMemMapFs in tests.
func NewWithFs(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Save writes the reader to a new file called name. Existing files are never
// overwritten.
func (s *Store) Save(ctx context.Context, name, contentType string, r io.Reader) (object.Stored, error) {
	if err := ctx.Err(); err != nil {
		return object.Stored{}, err
	}
	key, err := cleanKey(name)
	if err != nil {
		return object.Stored{}, err
	}

	f, err := s.fs.OpenFile(key, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return object.Stored{}, fmt.Errorf("open file: %w", err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return object.Stored{}, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(key)
		return object.Stored{}, fmt.Errorf("close file: %w", err)
	}

	return object.Stored{Key: key, SizeBytes: written, ContentType: contentType}, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := cleanKey(storageKey)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", key, object.ErrNotExist)
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", key, object.ErrNotExist)
	}
	return f, nil
}

// Delete removes a stored object.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := cleanKey(storageKey)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", key, object.ErrNotExist)
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func cleanKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

var _ object.ObjectStore = (*Store)(nil)
