package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/escrow"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
)

// EscrowService — сериализующий фасад над движком. Мутирующие операции
// держат write-lock: эффекты вызовов не перемежаются. Чтения берут
// read-lock — движок мутирует живые структуры заявок, и без него чтение
// могло бы увидеть полузаписанное состояние. Guard внутри движка при
// этом ловит только настоящий повторный вход через Treasury.
type EscrowService struct {
	mu     sync.RWMutex
	engine *escrow.Engine
}

func NewEscrowService(engine *escrow.Engine) *EscrowService {
	return &EscrowService{engine: engine}
}

// Engine отдаёт движок для read-only обращений.
func (s *EscrowService) Engine() *escrow.Engine {
	return s.engine
}

func (s *EscrowService) CreateSubmission(caller uuid.UUID, contentHash, categoryHash string, accessFee, stake float64, anonymous bool) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CreateSubmission(caller, contentHash, categoryHash, accessFee, stake, anonymous)
}

func (s *EscrowService) CancelSubmission(caller uuid.UUID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CancelSubmission(caller, id)
}

func (s *EscrowService) RecordEvaluation(caller uuid.UUID, id uint64, score int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RecordEvaluation(caller, id, score, action)
}

func (s *EscrowService) RegisterJournalist(caller uuid.UUID, metadata string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RegisterJournalist(caller, metadata)
}

func (s *EscrowService) SetJournalistApproval(caller, journalist uuid.UUID, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetJournalistApproval(caller, journalist, approved)
}

func (s *EscrowService) AccessSubmission(caller uuid.UUID, id uint64, payment float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AccessSubmission(caller, id, payment)
}

func (s *EscrowService) SlashStake(caller uuid.UUID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SlashStake(caller, id)
}

func (s *EscrowService) TimeoutRefund(caller uuid.UUID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TimeoutRefund(caller, id)
}

func (s *EscrowService) Withdraw(caller uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Withdraw(caller)
}

func (s *EscrowService) SetAgent(caller, newAgent uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetAgent(caller, newAgent)
}

func (s *EscrowService) Pause(caller uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Pause(caller)
}

func (s *EscrowService) Unpause(caller uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Unpause(caller)
}

// ReceiveValue отклоняет перевод без операции.
func (s *EscrowService) ReceiveValue(from uuid.UUID, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ReceiveValue(from, amount)
}

// Read-path: под read-lock, чтобы копия заявки не делалась посреди
// мутации её полей движком.

func (s *EscrowService) GetSubmission(id uint64) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.GetSubmission(id)
}

func (s *EscrowService) GetEvaluation(id uint64) (models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.GetEvaluation(id)
}

func (s *EscrowService) GetJournalist(id uuid.UUID) (models.JournalistProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.GetJournalist(id)
}

func (s *EscrowService) Balance(party uuid.UUID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Balance(party)
}
