package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(headerRequestID, requestID)
		}

		c.Set("request_id", requestID)
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}
