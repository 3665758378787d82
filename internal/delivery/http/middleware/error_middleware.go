package middleware

import (
	"errors"
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors appended to the gin context. AppErrors keep
// their status and client-safe message; anything else becomes a generic 500
// with the detail logged server-side only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed",
					"status", appErr.Code,
					"error", appErr.Err,
					"path", c.Request.URL.Path,
					"request_id", c.GetString("RequestID"),
				)
			}
			response.ErrorWithCodes(c, appErr.Code, appErr.Message, appErr.Codes)
			return
		}

		logger.Log.Error("unexpected error",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
