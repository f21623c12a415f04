package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError as a JSON response on a gin context.
func HandleError(c *gin.Context, err *AppError) {
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleAnyError wraps unknown error types as internal errors before writing.
func HandleAnyError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}
