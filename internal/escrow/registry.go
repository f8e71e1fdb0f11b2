package escrow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

// JournalistRegistry — саморегистрация журналистов и одобрение агентом.
type JournalistRegistry struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*models.JournalistProfile
}

func NewJournalistRegistry() *JournalistRegistry {
	return &JournalistRegistry{profiles: make(map[uuid.UUID]*models.JournalistProfile)}
}

// Register создаёт неодобренный профиль.
func (r *JournalistRegistry) Register(id uuid.UUID, metadata string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; ok {
		return apperror.ErrAlreadyRegistered
	}
	r.profiles[id] = &models.JournalistProfile{
		ID:           id,
		Metadata:     metadata,
		RegisteredAt: now,
	}
	return nil
}

// SetApproval выставляет флаг одобрения. Идемпотентна.
func (r *JournalistRegistry) SetApproval(id uuid.UUID, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return apperror.ErrNotRegistered
	}
	profile.Approved = approved
	return nil
}

// IsApproved сообщает, одобрен ли журналист.
func (r *JournalistRegistry) IsApproved(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	return ok && profile.Approved
}

// Get возвращает копию профиля.
func (r *JournalistRegistry) Get(id uuid.UUID) (models.JournalistProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return models.JournalistProfile{}, apperror.ErrNotRegistered
	}
	return *profile, nil
}
