package files

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []FileRecord
	byID map[string]int
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]int),
	}
}

// Create stores a new record. Ids must be unique.
func (r *MemoryRepo) Create(ctx context.Context, rec FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[rec.ID]; exists {
		return ErrDuplicateID
	}
	r.byID[rec.ID] = len(r.data)
	r.data = append(r.data, rec)
	return nil
}

// GetByID returns the record with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return FileRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return FileRecord{}, ErrNotFound
	}
	return r.data[idx], nil
}

// List returns every record, newest first. Records with equal timestamps are
// returned latest-inserted first.
func (r *MemoryRepo) List(ctx context.Context) ([]FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	recs := make([]FileRecord, 0, len(r.data))
	for i := len(r.data) - 1; i >= 0; i-- {
		recs = append(recs, r.data[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

var _ Repo = (*MemoryRepo)(nil)
