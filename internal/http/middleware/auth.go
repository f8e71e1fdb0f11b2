package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextIdentityKey = "identity"
)

// AuthMiddleware проверяет JWT токен личности.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		identity, err := tokens.Parse(raw)
		if err != nil || identity == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}
