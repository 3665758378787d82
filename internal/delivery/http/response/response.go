package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse is the 200 body for a delivered submission.
type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string   `json:"error"`
	ErrorCodes []string `json:"errorCodes,omitempty"`
}

// Success sends the success envelope with an optional provider message id.
func Success(c *gin.Context, code int, id string) {
	c.JSON(code, SuccessResponse{Success: true, ID: id})
}

// Error sends the error envelope.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// ErrorWithCodes sends the error envelope with provider error codes attached.
func ErrorWithCodes(c *gin.Context, code int, message string, codes []string) {
	c.JSON(code, ErrorResponse{Error: message, ErrorCodes: codes})
}
