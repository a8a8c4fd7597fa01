package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

const RequestIdHeader = "X-Request-Id"

// RequestId tags the request context logger with the caller's X-Request-Id,
// generating one when absent, and echoes it in the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}

		c.Header(RequestIdHeader, requestId)
		c.Request = c.Request.WithContext(logger.WithRequestId(c.Request.Context(), requestId))
		c.Next()
	}
}
