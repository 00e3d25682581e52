package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFieldError reports a validation failure keyed by the offending
// field. Non-field errors use the "non_field_errors" key.
func JSONFieldError(c *gin.Context, code int, field, message string) {
	if field == "" {
		field = "non_field_errors"
	}
	c.JSON(code, gin.H{"success": false, "errors": gin.H{field: message}})
}
