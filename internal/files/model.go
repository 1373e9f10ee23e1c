package files

import "time"

// FileRecord is the persisted metadata for one uploaded file.
type FileRecord struct {
	ID           string
	Title        string
	Description  string
	FilePath     string
	FileMimetype string
	FileName     string
	SizeBytes    int64
	CreatedAt    time.Time
}
