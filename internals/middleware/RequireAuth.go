package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/te6695/LibraryWebAPI/internals/service"
	logger "github.com/te6695/LibraryWebAPI/loggers"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	CtxUserId   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxTokenId  = "jti"
)

// RequireAuth validates the bearer token (Authorization header, cookie
// fallback) and puts the caller's identity into the gin context. With a
// session store configured, tokens whose session was revoked are rejected
// even before their expiry.
func RequireAuth(secret []byte, sessions service.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		claims, err := service.ParseToken(tokenString, secret)
		if err != nil {
			logger.Logger.Debug("token rejected: ", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
			return
		}

		if sessions != nil {
			alive, err := sessions.Exists(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Logger.Error("session lookup failed: ", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session check failed"})
				return
			}
			if !alive {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
				return
			}
		}

		userId, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
			return
		}

		c.Set(CtxUserId, uint(userId))
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxTokenId, claims.ID)
		c.Next()
	}
}

// RequireRole demands an exact role match. There is no hierarchy: Admin is
// not implicitly granted User-only routes or vice versa.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get(CtxRole)
		if !ok || current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
