package response

import (
	"github.com/gin-gonic/gin"
)

// All endpoints answer with a flat JSON envelope: {"success": true, ...}
// on the happy path, {"success": false, "message": "..."} on errors.

// OK writes a success envelope with the payload fields merged in.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes an error envelope. details is optional field-level context
// (validation errors and the like).
func Fail(c *gin.Context, status int, message string, details any) {
	body := gin.H{"success": false, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
