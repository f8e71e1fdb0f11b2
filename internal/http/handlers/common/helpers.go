package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/middleware"
)

var (
	// ErrIdentityNotFound is returned when identity is not found in context
	ErrIdentityNotFound = errors.New("личность не найдена в контексте")
)

// CurrentIdentity extracts the caller identity from Gin context
func CurrentIdentity(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextIdentityKey)
	if !exists {
		return uuid.Nil, ErrIdentityNotFound
	}

	identity, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrIdentityNotFound
	}

	return identity, nil
}

// ParseSubmissionID parses the numeric :id path parameter
func ParseSubmissionID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		RespondBadRequest(c, "неверный идентификатор заявки")
		return 0, false
	}
	return id, true
}

// ParseIntQuery returns an int query parameter or the fallback value
func ParseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// GetPagination returns limit/offset query parameters with defaults
func GetPagination(c *gin.Context) (int, int) {
	limit := ParseIntQuery(c, "limit", 20)
	offset := ParseIntQuery(c, "offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// RespondUnauthorized sends a 401 response
func RespondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

// RespondBadRequest sends a 400 response
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
