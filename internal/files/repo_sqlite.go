package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"filevault/internal/shared/storage/db"
)

// SQLiteRepo implements Repo on an embedded SQLite database. Timestamps are
// stored as fixed-width UTC text so ORDER BY sorts chronologically.
type SQLiteRepo struct {
	DB *sql.DB
}

// Create inserts a new record.
func (r *SQLiteRepo) Create(ctx context.Context, rec FileRecord) error {
	const query = `
INSERT INTO files (id, title, description, file_path, file_mimetype, file_name, size_bytes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Title,
		rec.Description,
		rec.FilePath,
		rec.FileMimetype,
		rec.FileName,
		rec.SizeBytes,
		db.FormatSQLiteTime(rec.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return err
	}
	return nil
}

// GetByID fetches a record by id.
func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (FileRecord, error) {
	const query = `
SELECT id, title, description, file_path, file_mimetype, file_name, size_bytes, created_at
FROM files
WHERE id = ?
LIMIT 1`
	rec, err := scanSQLiteRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileRecord{}, ErrNotFound
		}
		return FileRecord{}, err
	}
	return rec, nil
}

// List returns every record ordered newest-first.
func (r *SQLiteRepo) List(ctx context.Context) ([]FileRecord, error) {
	const query = `
SELECT id, title, description, file_path, file_mimetype, file_name, size_bytes, created_at
FROM files
ORDER BY created_at DESC, rowid DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FileRecord{}
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanSQLiteRecord(row rowScanner) (FileRecord, error) {
	var rec FileRecord
	var createdAt string
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.FilePath,
		&rec.FileMimetype,
		&rec.FileName,
		&rec.SizeBytes,
		&createdAt,
	); err != nil {
		return FileRecord{}, err
	}
	ts, err := db.ParseSQLiteTime(createdAt)
	if err != nil {
		return FileRecord{}, err
	}
	rec.CreatedAt = ts
	return rec, nil
}

var _ Repo = (*SQLiteRepo)(nil)
