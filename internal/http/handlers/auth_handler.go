package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// AuthHandler выпускает псевдонимные личности. Аккаунтов и PII нет:
// личность — свежий UUID, токен — единственное доказательство владения.
type AuthHandler struct {
	tokens *service.TokenManager
}

func NewAuthHandler(tokens *service.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueIdentity POST /auth/identity
func (h *AuthHandler) IssueIdentity(c *gin.Context) {
	token, err := h.tokens.IssueNew()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось выпустить токен"})
		return
	}

	c.JSON(http.StatusCreated, token)
}
