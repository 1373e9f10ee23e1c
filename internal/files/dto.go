package files

import "time"

// FileResponse is the outward-facing representation of a file record.
type FileResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	FilePath     string    `json:"file_path"`
	FileMimetype string    `json:"file_mimetype"`
	FileName     string    `json:"file_name"`
	SizeBytes    int64     `json:"file_size"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(rec FileRecord) FileResponse {
	return FileResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		FilePath:     rec.FilePath,
		FileMimetype: rec.FileMimetype,
		FileName:     rec.FileName,
		SizeBytes:    rec.SizeBytes,
		CreatedAt:    rec.CreatedAt,
	}
}

func toResponses(recs []FileRecord) []FileResponse {
	out := make([]FileResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toResponse(rec))
	}
	return out
}
