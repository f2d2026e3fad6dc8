package response

import (
	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError accepts a plain message, an error or a validation field map.
// Errors are attached to the gin context so the error logger sees them.
func CustomError(c *gin.Context, statusCode int, code string, payload any) {
	switch v := payload.(type) {
	case string:
		Error(c, statusCode, code, v)
	case error:
		_ = c.Error(v)
		Error(c, statusCode, code, v.Error())
	case map[string]string:
		ErrorWithDetails(c, statusCode, code, "Validation failed", v)
	default:
		ErrorWithDetails(c, statusCode, code, code, v)
	}
}

// Internal hides the underlying error from the client but records it.
func Internal(c *gin.Context, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, 500, "INTERNAL_ERROR", message)
}
