package files

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"filevault/internal/shared/storage/object"
	"filevault/internal/shared/telemetry"
)

// UploadInput is a single validated-on-entry upload request.
type UploadInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Service contains business logic for uploaded files.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	MaxUploadBytes int64

	// Now and NewID are overridable in tests.
	Now   func() time.Time
	NewID func() string
}

// Upload validates the request, writes the bytes and records the metadata.
// Bytes are written before the record is inserted; if the insert fails the
// bytes are deleted again so no orphan is left behind.
func (s *Service) Upload(ctx context.Context, in UploadInput) (FileRecord, error) {
	maxBytes := s.maxUploadBytes()
	if err := validateUpload(in, maxBytes); err != nil {
		uploadsTotal.WithLabelValues(resultRejected).Inc()
		return FileRecord{}, err
	}
	if in.Body == nil {
		uploadsTotal.WithLabelValues(resultRejected).Inc()
		return FileRecord{}, validationError("file is required")
	}

	name, err := object.GeneratedName(s.now(), in.FileName)
	if err != nil {
		uploadsTotal.WithLabelValues(resultRejected).Inc()
		if errors.Is(err, object.ErrNameTooLong) {
			return FileRecord{}, validationError(fmt.Sprintf("file name too long: maximum is %d bytes", object.MaxOriginalNameBytes))
		}
		return FileRecord{}, validationError("invalid file name")
	}

	body := bufio.NewReaderSize(io.LimitReader(in.Body, maxBytes+1), sniffLen)
	head, _ := body.Peek(sniffLen)
	mt := resolveMimetype(in.ContentType, in.FileName, head)

	stored, err := s.Store.Save(ctx, name, mt, body)
	if err != nil {
		uploadsTotal.WithLabelValues(resultFailed).Inc()
		return FileRecord{}, fmt.Errorf("%w: save %s: %w", ErrPersistence, name, err)
	}
	if stored.SizeBytes > maxBytes {
		s.discard(ctx, stored.Key, "oversize")
		uploadsTotal.WithLabelValues(resultRejected).Inc()
		return FileRecord{}, sizeError(maxBytes)
	}

	rec := FileRecord{
		ID:           s.newID(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		FilePath:     stored.Key,
		FileMimetype: mt,
		FileName:     in.FileName,
		SizeBytes:    stored.SizeBytes,
		// Stamped once the bytes are stored, not when the request arrived.
		CreatedAt: s.now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		s.discard(ctx, stored.Key, "insert_failed")
		uploadsTotal.WithLabelValues(resultFailed).Inc()
		return FileRecord{}, fmt.Errorf("%w: insert %s: %w", ErrPersistence, rec.ID, err)
	}

	uploadsTotal.WithLabelValues(resultOK).Inc()
	uploadBytes.Observe(float64(rec.SizeBytes))
	telemetry.Info("file.uploaded", map[string]any{
		"file_id":       rec.ID,
		"file_path":     rec.FilePath,
		"file_mimetype": rec.FileMimetype,
		"size_bytes":    rec.SizeBytes,
	})
	return rec, nil
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]FileRecord, error) {
	recs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []FileRecord{}
	}
	return recs, nil
}

// Download looks up a record and opens its bytes. The caller closes the reader.
func (s *Service) Download(ctx context.Context, id string) (FileRecord, io.ReadCloser, error) {
	if _, err := uuid.Parse(id); err != nil {
		downloadsTotal.WithLabelValues(resultRejected).Inc()
		return FileRecord{}, nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			downloadsTotal.WithLabelValues(resultNotFound).Inc()
			return FileRecord{}, nil, err
		}
		downloadsTotal.WithLabelValues(resultFailed).Inc()
		return FileRecord{}, nil, fmt.Errorf("%w: lookup %s: %w", ErrRetrieval, id, err)
	}

	rc, err := s.Store.Open(ctx, rec.FilePath)
	if err != nil {
		downloadsTotal.WithLabelValues(resultFailed).Inc()
		return FileRecord{}, nil, fmt.Errorf("%w: open %s: %w", ErrRetrieval, rec.FilePath, err)
	}

	downloadsTotal.WithLabelValues(resultOK).Inc()
	return rec, rc, nil
}

// discard is the compensating action for bytes that will never get a record.
func (s *Service) discard(ctx context.Context, key, reason string) {
	fields := map[string]any{"file_path": key, "reason": reason}
	if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, object.ErrNotExist) {
		fields["error"] = err.Error()
		telemetry.Error("file.discard.failed", fields)
		return
	}
	telemetry.Warn("file.discarded", fields)
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
