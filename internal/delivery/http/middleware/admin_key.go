package middleware

import (
	"crypto/subtle"
	"net/http"

	"contact-page-backend/internal/delivery/http/response"
	"contact-page-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the operator key for export endpoints
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware admits requests whose X-Admin-Key matches key.
// An empty key rejects everything.
func AdminKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(AdminKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			security.DefaultLogger().LogAdminKeyRejected(c.Request.Context(), c.ClientIP(), GetRequestID(c), c.FullPath())
			response.Error(c, http.StatusUnauthorized, "Invalid admin key", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
