// SPDX-License-Identifier: MIT
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName holds the admin session token. The cookie has no expiry so it
// ends with the browser session.
const CookieName = "salon_session"

// LoginPath is where unauthenticated page requests are sent
const LoginPath = "/admin/login"

// RequireAdmin middleware lets requests with a valid session through. Page
// requests without one are redirected to the login form, API requests get 401.
func RequireAdmin(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		if err == nil && cookie != "" {
			if claims, err := sessions.Validate(cookie); err == nil {
				c.Set("session", claims)
				c.Next()
				return
			}
		}

		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessão expirada. Entre novamente."})
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}

// SetSessionCookie stores token in a browser-session cookie
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, 0, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
