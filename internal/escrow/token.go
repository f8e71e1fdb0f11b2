package escrow

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// SeedSource отдаёт свежее непредсказуемое значение для чеканки токена —
// аналог хэша недавнего блока у он-чейн исполнения.
type SeedSource interface {
	Seed() [32]byte
}

// RollingSeed — источник по умолчанию: цепочка sha3 от предыдущего
// значения и crypto/rand, обновляется при каждом чтении.
type RollingSeed struct {
	mu      sync.Mutex
	current [32]byte
}

func NewRollingSeed() *RollingSeed {
	var s RollingSeed
	_, _ = rand.Read(s.current[:])
	return &s
}

func (s *RollingSeed) Seed() [32]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entropy [16]byte
	_, _ = rand.Read(entropy[:])
	h := sha3.New256()
	h.Write(s.current[:])
	h.Write(entropy[:])
	copy(s.current[:], h.Sum(nil))
	return s.current
}

// AccessTokenIssuer чеканит токен доступа: детерминированный по входам
// дайджест, непредсказуемый до момента вызова. Токен — не capability,
// а аудиторская запись, связывающая оплату с последующей выдачей ключа.
type AccessTokenIssuer struct {
	seeds SeedSource
}

func NewAccessTokenIssuer(seeds SeedSource) *AccessTokenIssuer {
	if seeds == nil {
		seeds = NewRollingSeed()
	}
	return &AccessTokenIssuer{seeds: seeds}
}

// Mint выпускает токен для заявки id, выданный accessor в момент now.
func (i *AccessTokenIssuer) Mint(id uint64, accessor uuid.UUID, now time.Time) string {
	seed := i.seeds.Seed()

	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], id)
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(now.UnixNano()))

	h := sha3.New256()
	h.Write(idBuf[:])
	h.Write(accessor[:])
	h.Write(tsBuf[:])
	h.Write(seed[:])
	return hex.EncodeToString(h.Sum(nil))
}
