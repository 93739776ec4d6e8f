package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
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

// FromError maps an error kind to the HTTP status and error code this API
// uses. The message names the operation plus a human-readable reason, which
// the mobile app surfaces as an alert for user-initiated actions.
func FromError(c *gin.Context, operation string, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	case apperr.KindNotFound:
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case apperr.KindConflict:
		status = http.StatusConflict
		code = "CONFLICT"
	case apperr.KindSchemaMismatch, apperr.KindRemote, apperr.KindRealtime:
		status = http.StatusBadGateway
		code = "REMOTE_ERROR"
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, operation) {
		msg = operation + ": " + msg
	}
	Error(c, status, code, msg)
}
