package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers/common"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// JournalistHandler — саморегистрация и чтение профилей журналистов.
type JournalistHandler struct {
	escrow *service.EscrowService
}

func NewJournalistHandler(escrow *service.EscrowService) *JournalistHandler {
	return &JournalistHandler{escrow: escrow}
}

// Register POST /journalists
func (h *JournalistHandler) Register(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Metadata string `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.escrow.RegisterJournalist(caller, req.Metadata); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": caller})
}

// GetProfile GET /journalists/:id
func (h *JournalistHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор журналиста")
		return
	}

	profile, err := h.escrow.GetJournalist(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
