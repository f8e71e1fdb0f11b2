package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers/common"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

// WalletHandler — pull-вывод средств и баланс ledger.
type WalletHandler struct {
	escrow *service.EscrowService
}

func NewWalletHandler(escrow *service.EscrowService) *WalletHandler {
	return &WalletHandler{escrow: escrow}
}

// Withdraw POST /withdrawals
func (h *WalletHandler) Withdraw(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	amount, err := h.escrow.Withdraw(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// GetBalance GET /balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": h.escrow.Balance(caller)})
}

// RejectTransfer POST /transfers
// Перевод средств вне операций всегда отклоняется: иначе сумма стала бы
// невидимой для ledger.
func (h *WalletHandler) RejectTransfer(c *gin.Context) {
	caller, err := common.CurrentIdentity(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := h.escrow.ReceiveValue(caller, req.Amount); err != nil {
		respondError(c, err)
		return
	}
}
