package escrow

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

const hashHexLen = 64

// SubmissionStore хранит заявки, выдаёт идентификаторы и считает
// заявки по отправителю для rate limit. Идентификаторы монотонны,
// начинаются с 1 и никогда не переиспользуются.
type SubmissionStore struct {
	mu          sync.RWMutex
	nextID      uint64
	submissions map[uint64]*models.Submission
	perParty    map[uuid.UUID]int
	maxPerParty int
}

func NewSubmissionStore(maxPerParty int) *SubmissionStore {
	return &SubmissionStore{
		nextID:      1,
		submissions: make(map[uint64]*models.Submission),
		perParty:    make(map[uuid.UUID]int),
		maxPerParty: maxPerParty,
	}
}

// Add сохраняет новую заявку со статусом pending и возвращает её id.
// Счётчик отправителя не уменьшается никогда: лимит считает все заявки,
// включая отменённые и оштрафованные.
func (s *SubmissionStore) Add(sub *models.Submission) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.perParty[sub.PayoutID] >= s.maxPerParty {
		return 0, apperror.ErrRateLimited
	}

	id := s.nextID
	s.nextID++
	sub.ID = id
	sub.Status = models.SubmissionStatusPending
	s.submissions[id] = sub
	s.perParty[sub.PayoutID]++
	return id, nil
}

// Get возвращает заявку по id. Возвращается живой указатель; мьютекс
// хранилища защищает только карту, не поля заявки. Мутации и чтения
// полей должны быть сериализованы снаружи (service.EscrowService).
func (s *SubmissionStore) Get(id uint64) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, apperror.ErrSubmissionNotFound
	}
	return sub, nil
}

// Snapshot возвращает копию заявки для отдачи наружу. Копирование
// должно быть сериализовано с мутациями тем же внешним локом, что и Get.
func (s *SubmissionStore) Snapshot(id uint64) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return models.Submission{}, apperror.ErrSubmissionNotFound
	}
	return *sub, nil
}

// CountByParty возвращает число заявок отправителя.
func (s *SubmissionStore) CountByParty(party uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perParty[party]
}

// ValidateHash проверяет, что дайджест задан: 64 hex-символа и не нулевой.
// Содержимое дайджеста не интерпретируется.
func ValidateHash(h string) bool {
	if len(h) != hashHexLen {
		return false
	}
	zero := true
	for _, c := range strings.ToLower(h) {
		switch {
		case c >= '0' && c <= '9':
			if c != '0' {
				zero = false
			}
		case c >= 'a' && c <= 'f':
			zero = false
		default:
			return false
		}
	}
	return !zero
}
