package files

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"filevault/internal/shared/server/respond"
	"filevault/internal/shared/telemetry"
)

// multipartOverhead is the slack allowed on top of the file limit for the
// text fields and part headers of an upload body.
const multipartOverhead = 64 << 10

const (
	msgUploaded       = "file uploaded successfully."
	msgUploadFailed   = "Error while uploading file. Try again later."
	msgListFailed     = "Error while getting list of files. Try again later."
	msgDownloadFailed = "Error while downloading file. Try again later."
	msgFileNotFound   = "File not found."
	msgInvalidFileID  = "Invalid file id."
	fileIDHeader      = "X-File-Id"
	fileIDContextKey  = "fileId"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/upload", h.upload)
	r.GET("/getAllFiles", h.list)
	r.GET("/download/:id", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	maxBytes := h.Svc.maxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", bodySizeError(maxBytes, tooLarge.Limit).Error())
		case errors.Is(err, http.ErrMissingFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is required")
		default:
			// Multipart parsing failures surface verbatim, like any framework error.
			respond.Error(c, http.StatusInternalServerError, "upload_error", err.Error())
		}
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upload_error", err.Error())
		return
	}
	defer file.Close()

	rec, err := h.Svc.Upload(c.Request.Context(), UploadInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Message)
			return
		}
		telemetry.Error("file.upload.failed", map[string]any{
			"error":      err.Error(),
			"file_name":  fileHeader.Filename,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusBadRequest, "persistence_error", msgUploadFailed)
		return
	}

	c.Set(fileIDContextKey, rec.ID)
	c.Header(fileIDHeader, rec.ID)
	respond.Text(c, http.StatusOK, msgUploaded)
}

func (h *Handler) list(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		telemetry.Error("file.list.failed", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusBadRequest, "list_error", msgListFailed)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(recs))
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set(fileIDContextKey, id)

	rec, rc, err := h.Svc.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			respond.Error(c, http.StatusBadRequest, "invalid_id", msgInvalidFileID)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusBadRequest, "not_found", msgFileNotFound)
		default:
			telemetry.Error("file.download.failed", map[string]any{
				"error":      err.Error(),
				"file_id":    id,
				"request_id": c.GetString("requestId"),
			})
			respond.Error(c, http.StatusBadRequest, "retrieval_error", msgDownloadFailed)
		}
		return
	}
	defer rc.Close()

	extra := map[string]string{}
	if rec.FileName != "" {
		extra["Content-Disposition"] = mime.FormatMediaType("inline", map[string]string{"filename": rec.FileName})
	}
	c.DataFromReader(http.StatusOK, rec.SizeBytes, rec.FileMimetype, rc, extra)
}
