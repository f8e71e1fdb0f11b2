package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalistProfile — профиль получателя доступа. Регистрация и одобрение
// агентом — независимые действия.
type JournalistProfile struct {
	ID           uuid.UUID `json:"id"`
	Approved     bool      `json:"approved"`
	Metadata     string    `json:"metadata"`
	RegisteredAt time.Time `json:"registered_at"`
}
