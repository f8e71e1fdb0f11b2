package escrow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithdrawalLedger_CreditAndBalance(t *testing.T) {
	ledger := NewWithdrawalLedger()
	party := uuid.New()

	assert.Equal(t, 0.0, ledger.Balance(party))

	ledger.Credit(party, 100)
	ledger.Credit(party, 50)
	assert.Equal(t, 150.0, ledger.Balance(party))

	// Нулевые и отрицательные зачисления игнорируются.
	ledger.Credit(party, 0)
	ledger.Credit(party, -10)
	assert.Equal(t, 150.0, ledger.Balance(party))
}

func TestWithdrawalLedger_TakeZeroesBeforeTransfer(t *testing.T) {
	ledger := NewWithdrawalLedger()
	party := uuid.New()
	ledger.Credit(party, 200)

	amount := ledger.Take(party)
	assert.Equal(t, 200.0, amount)
	assert.Equal(t, 0.0, ledger.Balance(party))

	// Повторный Take возвращает ноль.
	assert.Equal(t, 0.0, ledger.Take(party))
}

func TestWithdrawalLedger_RestoreAfterFailedTransfer(t *testing.T) {
	ledger := NewWithdrawalLedger()
	party := uuid.New()
	ledger.Credit(party, 75)

	amount := ledger.Take(party)
	ledger.Restore(party, amount)
	assert.Equal(t, 75.0, ledger.Balance(party))
}

func TestWithdrawalLedger_Debit(t *testing.T) {
	ledger := NewWithdrawalLedger()
	party := uuid.New()
	ledger.Credit(party, 100)

	assert.True(t, ledger.Debit(party, 40))
	assert.Equal(t, 60.0, ledger.Balance(party))

	// Списание сверх баланса не проходит и ничего не меняет.
	assert.False(t, ledger.Debit(party, 100))
	assert.Equal(t, 60.0, ledger.Balance(party))
}
