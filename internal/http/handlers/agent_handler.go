package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers/common"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// AgentHandler — операции доверенного агента: оценка, штраф, одобрение.
// Авторизацию по личности агента выполняет движок, не транспорт.
type AgentHandler struct {
	escrow *service.EscrowService
}

func NewAgentHandler(escrow *service.EscrowService) *AgentHandler {
	return &AgentHandler{escrow: escrow}
}

// RecordEvaluation POST /submissions/:id/evaluation
func (h *AgentHandler) RecordEvaluation(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	var req struct {
		Score             *int   `json:"score" binding:"required"`
		RecommendedAction string `json:"recommended_action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.escrow.RecordEvaluation(caller, id, *req.Score, req.RecommendedAction); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// GetEvaluation GET /submissions/:id/evaluation
func (h *AgentHandler) GetEvaluation(c *gin.Context) {
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	eval, err := h.escrow.GetEvaluation(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// SlashStake POST /submissions/:id/slash
func (h *AgentHandler) SlashStake(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	if err := h.escrow.SlashStake(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "slashed"})
}

// SetApproval PUT /journalists/:id/approval
func (h *AgentHandler) SetApproval(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	journalistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор журналиста")
		return
	}

	var req struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.escrow.SetJournalistApproval(caller, journalistID, *req.Approved); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": *req.Approved})
}
