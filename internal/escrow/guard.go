package escrow

import (
	"sync"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

// reentrancyGuard защищает операции движка от повторного входа во время
// внешнего перевода. Вход не блокирует: вложенный вызов сразу получает
// ReentrantCall. Сериализацию независимых вызовов обеспечивает слой выше
// (service.EscrowService), здесь ловится только вход изнутри операции.
type reentrancyGuard struct {
	mu   sync.Mutex
	busy bool
}

func (g *reentrancyGuard) enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return apperror.ErrReentrantCall
	}
	g.busy = true
	return nil
}

func (g *reentrancyGuard) leave() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}
