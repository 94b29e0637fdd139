package middleware

import (
	"context"
	"time"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	ctxutil "github.com/Payphone-Digital/jobboard/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContext seeds the request context with the metadata the context
// logger reads: request id, client IP and start time. The request id is
// taken from X-Request-ID when the caller sends one and echoed back.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "http", c.FullPath())
		ctx = ctxutil.WithRequestID(ctx, requestID)
		ctx = ctxutil.WithClientIP(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Set(constants.GinKeyRequestID, requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		c.Next()
	}
}

// RequestTimeout bounds the time handlers may spend on storage calls.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
