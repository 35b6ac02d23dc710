package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a standardized error response for API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// MessageResponse carries a non-error outcome with optional payload.
type MessageResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error aborts the request with an ErrorResponse. An empty message uses the code's default text.
func Error(c *gin.Context, status, code int, message, details string) {
	if message == "" {
		message = Message(code)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func Success(c *gin.Context, status, code int, message string, data any) {
	if message == "" {
		message = Message(code)
	}
	c.JSON(status, MessageResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}
