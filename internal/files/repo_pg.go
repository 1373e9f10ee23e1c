package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec FileRecord) error {
	const query = `
INSERT INTO files (
    id,
    title,
    description,
    file_path,
    file_mimetype,
    file_name,
    size_bytes,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

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
		rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return err
	}
	return nil
}

// GetByID fetches a record by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (FileRecord, error) {
	const query = `
SELECT id, title, description, file_path, file_mimetype, file_name, size_bytes, created_at
FROM files
WHERE id = $1
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileRecord{}, ErrNotFound
		}
		return FileRecord{}, err
	}
	return rec, nil
}

// List returns every record ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]FileRecord, error) {
	const query = `
SELECT id, title, description, file_path, file_mimetype, file_name, size_bytes, created_at
FROM files
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FileRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (FileRecord, error) {
	var rec FileRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.FilePath,
		&rec.FileMimetype,
		&rec.FileName,
		&rec.SizeBytes,
		&rec.CreatedAt,
	); err != nil {
		return FileRecord{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
