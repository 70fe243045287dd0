package middleware

import (
	"fmt"
	"strconv"

	"github.com/aurumascend/raisesignal-backend/errors"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// error envelope after the handler chain has run. Handlers report failures
// with `_ = c.Error(...)` and leave the response to this middleware.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			if appError.Type == errors.RateLimitError && appError.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(appError.RetryAfter))
			}

			response := gin.H{
				"success": false,
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}

			// Field-level detail goes to the client only for errors the
			// submitter can act on. Everything else stays in the logs.
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.PayloadError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors surface as malformed-payload responses.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, 400, "Request binding error")

			response := gin.H{
				"success": false,
				"type":    string(errors.PayloadError),
				"message": "Invalid request payload",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}

			c.JSON(400, response)
			return
		}

		logger.LogHTTPError(c, err, 500, "Unexpected server error")

		response := gin.H{
			"success": false,
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}

		c.JSON(500, response)
	}
}
