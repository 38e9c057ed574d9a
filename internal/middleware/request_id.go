package middleware

import (
	"comercial/internal/audit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID propagates or generates X-Request-ID and attaches the request
// origin to the request context for the audit trail.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		ctx := audit.WithMeta(c.Request.Context(), audit.Meta{
			IP:        c.ClientIP(),
			URL:       scheme + "://" + c.Request.Host + c.Request.URL.RequestURI(),
			RequestID: id,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
