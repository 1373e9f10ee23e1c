package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"filevault/internal/shared/server/respond"
	"filevault/internal/shared/telemetry"
)

const msgUnexpected = "Unexpected server error"

// Recovery turns handler panics into a plain-text 500. Panics caused by the
// client hanging up mid-download are logged but get no response body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			httpPanicsTotal.Inc()

			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"file_id":    c.GetString("fileId"),
				"error":      rec,
			}
			if clientGone(rec) {
				telemetry.Warn("panic.client_gone", fields)
				c.Abort()
				return
			}
			fields["stack"] = string(debug.Stack())
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal", msgUnexpected)
		}()
		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}
