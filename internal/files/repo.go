package files

import "context"

// Repo defines persistence operations for file records.
type Repo interface {
	Create(ctx context.Context, rec FileRecord) error
	GetByID(ctx context.Context, id string) (FileRecord, error)
	List(ctx context.Context) ([]FileRecord, error)
}
