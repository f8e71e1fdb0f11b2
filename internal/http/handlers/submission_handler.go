package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers/common"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/repository"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// SubmissionHandler обслуживает жизненный цикл заявок.
type SubmissionHandler struct {
	escrow  *service.EscrowService
	journal *repository.JournalRepository
}

func NewSubmissionHandler(escrow *service.EscrowService, journal *repository.JournalRepository) *SubmissionHandler {
	return &SubmissionHandler{escrow: escrow, journal: journal}
}

// CreateSubmission POST /submissions
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		ContentHash  string  `json:"content_hash" binding:"required"`
		CategoryHash string  `json:"category_hash"`
		AccessFee    float64 `json:"access_fee" binding:"required,gt=0"`
		Stake        float64 `json:"stake" binding:"required,gt=0"`
		Anonymous    bool    `json:"anonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	id, err := h.escrow.CreateSubmission(caller, req.ContentHash, req.CategoryHash, req.AccessFee, req.Stake, req.Anonymous)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetSubmission GET /submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	sub, err := h.escrow.GetSubmission(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CancelSubmission DELETE /submissions/:id
func (h *SubmissionHandler) CancelSubmission(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	if err := h.escrow.CancelSubmission(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// AccessSubmission POST /submissions/:id/access
func (h *SubmissionHandler) AccessSubmission(c *gin.Context) {
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
		Payment float64 `json:"payment" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "сумма оплаты должна быть положительной")
		return
	}

	token, err := h.escrow.AccessSubmission(caller, id, req.Payment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// TimeoutRefund POST /submissions/:id/timeout-refund
// Доступен любому вызывающему: это публичный триггер возврата.
func (h *SubmissionHandler) TimeoutRefund(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}

	if err := h.escrow.TimeoutRefund(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refunded"})
}

// ListEvents GET /submissions/:id/events
func (h *SubmissionHandler) ListEvents(c *gin.Context) {
	id, ok := common.ParseSubmissionID(c)
	if !ok {
		return
	}
	if h.journal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "журнал событий не настроен"})
		return
	}

	limit, offset := common.GetPagination(c)
	entries, err := h.journal.ListBySubmission(c.Request.Context(), id, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать журнал"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": entries})
}
