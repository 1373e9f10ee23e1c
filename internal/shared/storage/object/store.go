package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist reports that no object is stored under the requested key.
var ErrNotExist = errors.New("object does not exist")

// Stored describes bytes committed to an ObjectStore.
type Stored struct {
	Key         string
	SizeBytes   int64
	ContentType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (Stored, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
