package bank

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/logger"
)

// AccountBank — внутрипроцессная реализация escrow.Treasury: ведёт
// счета участников и зачисляет исходящие переводы движка. В он-чейн
// развёртывании её место занимает перевод нативной валюты.
type AccountBank struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]float64
}

func NewAccountBank() *AccountBank {
	return &AccountBank{accounts: make(map[uuid.UUID]float64)}
}

// Transfer зачисляет amount на счёт получателя.
func (b *AccountBank) Transfer(to uuid.UUID, amount float64) error {
	b.mu.Lock()
	b.accounts[to] += amount
	b.mu.Unlock()

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"to":     to,
			"amount": amount,
		}).Debug("bank: исходящий перевод")
	}
	return nil
}

// AccountBalance возвращает счёт участника.
func (b *AccountBank) AccountBalance(party uuid.UUID) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.accounts[party]
}
