package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers/common"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// AdminHandler — операции владельца: ротация агента и circuit breaker.
type AdminHandler struct {
	escrow *service.EscrowService
}

func NewAdminHandler(escrow *service.EscrowService) *AdminHandler {
	return &AdminHandler{escrow: escrow}
}

// SetAgent PUT /admin/agent
func (h *AdminHandler) SetAgent(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		AgentID string `json:"agent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		common.RespondBadRequest(c, "неверный agent_id")
		return
	}

	if err := h.escrow.SetAgent(caller, agentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agent": agentID})
}

// Pause POST /admin/pause
func (h *AdminHandler) Pause(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.escrow.Pause(caller); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paused": true})
}

// Unpause POST /admin/unpause
func (h *AdminHandler) Unpause(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.escrow.Unpause(caller); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paused": false})
}
