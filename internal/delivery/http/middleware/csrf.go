package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"contact-page-backend/internal/delivery/http/response"
	"contact-page-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every response carries a csrf_token cookie. Mutating requests that rely on
// the contact_session cookie must echo that value in X-CSRF-Token. Requests
// that carry their session as a Bearer header are not forgeable cross-site
// and skip the check, as do the exempt paths (no session exists yet there).
func CSRFMiddleware(secureCookie bool, exemptPaths ...string) gin.HandlerFunc {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}

	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",           // Domain (empty = current domain)
				secureCookie, // HTTPS only in production
				false,        // HttpOnly = false so JS can read it
			)
			csrfCookie = newToken
		}

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}
		if exempt[c.Request.URL.Path] || bearerToken(c) != "" {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			rejectCSRF(c, "missing")
			return
		}
		if subtle.ConstantTimeCompare([]byte(headerToken), []byte(csrfCookie)) != 1 {
			rejectCSRF(c, "mismatch")
			return
		}

		c.Next()
	}
}

func rejectCSRF(c *gin.Context, reason string) {
	security.DefaultLogger().LogCSRFRejected(c.Request.Context(), c.ClientIP(), GetRequestID(c), c.Request.URL.Path, reason)
	if reason == "missing" {
		response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
	} else {
		response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
	}
	c.Abort()
}
