package escrow

import (
	"sync"

	"github.com/google/uuid"
)

// WithdrawalLedger — накопительные балансы участников для pull-вывода.
// Единственный путь, по которому средства покидают эскроу в сторону
// кого-либо, кроме непосредственного вызывающего accessSubmission.
type WithdrawalLedger struct {
	mu      sync.RWMutex
	pending map[uuid.UUID]float64
}

func NewWithdrawalLedger() *WithdrawalLedger {
	return &WithdrawalLedger{pending: make(map[uuid.UUID]float64)}
}

// Credit увеличивает баланс участника.
func (l *WithdrawalLedger) Credit(party uuid.UUID, amount float64) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	l.pending[party] += amount
	l.mu.Unlock()
}

// Balance возвращает текущий накопленный баланс.
func (l *WithdrawalLedger) Balance(party uuid.UUID) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pending[party]
}

// Take атомарно обнуляет баланс и возвращает снятую сумму.
// Обнуление происходит до внешнего перевода (checks-effects-interactions);
// при неудаче перевода вызывающий обязан вернуть сумму через Restore.
func (l *WithdrawalLedger) Take(party uuid.UUID) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	amount := l.pending[party]
	if amount > 0 {
		delete(l.pending, party)
	}
	return amount
}

// Restore возвращает ранее снятую сумму после неудачного перевода.
func (l *WithdrawalLedger) Restore(party uuid.UUID, amount float64) {
	l.Credit(party, amount)
}

// Debit списывает ровно amount, если баланс достаточен.
// Используется при откате эффектов неудавшейся операции.
func (l *WithdrawalLedger) Debit(party uuid.UUID, amount float64) bool {
	if amount <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending[party] < amount {
		return false
	}
	l.pending[party] -= amount
	if l.pending[party] == 0 {
		delete(l.pending, party)
	}
	return true
}
