package middleware

import (
	"net/http"
	"strings"

	"hazard_duel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	CtxPlayerID   = "player_id"
	CtxPlayerName = "player_name"
)

// TokenFromRequest looks for the token in the cookie, then the Authorization
// header (last word), then the token query parameter used by websocket clients.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.Fields(h)
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return c.Query("token")
}

// JWT authenticates the request and stores the player in the context.
func JWT(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromRequest(c, tokens.CookieName())
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxPlayerID, claims.Subject)
		c.Set(CtxPlayerName, claims.Name)
		c.Next()
	}
}
