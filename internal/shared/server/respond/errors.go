package respond

import (
	"github.com/gin-gonic/gin"

	"filevault/internal/shared/telemetry"
)

// Error logs the failure and aborts with a plain-text message body. code is a
// stable machine-readable label used only in logs.
func Error(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if fileID := c.GetString("fileId"); fileID != "" {
		fields["file_id"] = fileID
	}
	telemetry.Error("http.error", fields)

	c.Abort()
	c.String(status, message)
}
