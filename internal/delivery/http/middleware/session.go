package middleware

import (
	"net/http"
	"strings"

	"contact-page-backend/internal/delivery/http/response"
	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/auth"
	"contact-page-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the session token for browser clients
const SessionCookieName = "contact_session"

// SessionMiddleware resolves the visitor's form session from a Bearer token
// or the contact_session cookie. The header wins when both are present.
func SessionMiddleware(tokens *auth.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString, _ = c.Cookie(SessionCookieName)
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Missing session token", nil)
			c.Abort()
			return
		}

		sessionID, err := tokens.Parse(tokenString)
		if err != nil {
			security.DefaultLogger().LogInvalidSessionToken(c.Request.Context(), c.ClientIP(), GetRequestID(c), err)
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeySessionID), sessionID)
		c.Next()
	}
}

// GetSessionID returns the session resolved by SessionMiddleware
func GetSessionID(c *gin.Context) string {
	id, _ := c.Get(string(domain.KeySessionID))
	s, _ := id.(string)
	return s
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
