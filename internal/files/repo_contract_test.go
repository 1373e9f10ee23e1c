package files

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// runRepoContract exercises the behavior every Repo implementation shares.
func runRepoContract(t *testing.T, repo Repo) {
	t.Helper()
	ctx := context.Background()

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := testRecord(base, "older")
	newer := testRecord(base.Add(2*time.Second), "newer")
	middle := testRecord(base.Add(time.Second), "middle")

	for _, rec := range []FileRecord{older, newer, middle} {
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create %s: %v", rec.Title, err)
		}
	}

	if err := repo.Create(ctx, older); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID on repeated id, got %v", err)
	}

	got, err := repo.GetByID(ctx, middle.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != middle.Title || got.FilePath != middle.FilePath || got.FileMimetype != middle.FileMimetype {
		t.Fatalf("GetByID returned %#v, want %#v", got, middle)
	}
	if got.FileName != middle.FileName || got.SizeBytes != middle.SizeBytes {
		t.Fatalf("GetByID lost file name or size: %#v", got)
	}
	if !got.CreatedAt.Equal(middle.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, middle.CreatedAt)
	}

	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	wantOrder := []string{"newer", "middle", "older"}
	for i, want := range wantOrder {
		if list[i].Title != want {
			t.Fatalf("list[%d] = %s, want %s", i, list[i].Title, want)
		}
	}
}

func testRecord(createdAt time.Time, title string) FileRecord {
	return FileRecord{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  title + " description",
		FilePath:     "1714564800000_" + title + ".pdf",
		FileMimetype: "application/pdf",
		FileName:     title + ".pdf",
		SizeBytes:    int64(len(title)) * 100,
		CreatedAt:    createdAt,
	}
}
