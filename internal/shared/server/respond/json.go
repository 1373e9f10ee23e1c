package respond

import "github.com/gin-gonic/gin"

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Text writes a plain-text response with the given status.
func Text(c *gin.Context, status int, body string) {
	c.String(status, body)
}
