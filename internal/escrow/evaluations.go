package escrow

import (
	"sync"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

// EvaluationStore — не более одной оценки на заявку, запись неизменяема.
// Признак "оценено" нигде не дублируется: он выводится из Contains.
type EvaluationStore struct {
	mu          sync.RWMutex
	evaluations map[uint64]models.Evaluation
}

func NewEvaluationStore() *EvaluationStore {
	return &EvaluationStore{evaluations: make(map[uint64]models.Evaluation)}
}

// Put записывает оценку. Повторная запись запрещена.
func (s *EvaluationStore) Put(eval models.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.evaluations[eval.SubmissionID]; ok {
		return apperror.ErrAlreadyEvaluated
	}
	s.evaluations[eval.SubmissionID] = eval
	return nil
}

// Get возвращает оценку заявки.
func (s *EvaluationStore) Get(id uint64) (models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eval, ok := s.evaluations[id]
	if !ok {
		return models.Evaluation{}, apperror.ErrNotEvaluated
	}
	return eval, nil
}

// Contains сообщает, оценена ли заявка.
func (s *EvaluationStore) Contains(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.evaluations[id]
	return ok
}
