package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы заявки. Переходы только в одну сторону, см. engine.
const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusVerified  = "verified"
	SubmissionStatusAccessed  = "accessed"
	SubmissionStatusDisputed  = "disputed"
	SubmissionStatusCancelled = "cancelled"
	SubmissionStatusRefunded  = "refunded"
)

// AnonymousSubmitter — публичный идентификатор анонимных отправителей.
// Реальный отправитель хранится в PayoutID и наружу не отдаётся.
var AnonymousSubmitter = uuid.MustParse("00000000-0000-4000-8000-000000000a11")

// Submission представляет заявку на продажу информации.
// Сам контент хранится вне платформы и представлен только хэшем.
type Submission struct {
	ID           uint64     `json:"id"`
	ContentHash  string     `json:"content_hash"`
	CategoryHash string     `json:"category_hash"`
	Submitter    uuid.UUID  `json:"submitter"`
	AccessFee    float64    `json:"access_fee"`
	StakeAmount  float64    `json:"stake_amount"`
	Status       string     `json:"status"`
	Accessor     uuid.UUID  `json:"accessor,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AccessedAt   *time.Time `json:"accessed_at,omitempty"`

	// AccessToken отдаётся ровно один раз — в ответе на оплату доступа.
	// Публичное чтение заявки его не раскрывает.
	AccessToken string `json:"-"`

	// PayoutID — реальный получатель возврата залога. Для анонимных
	// заявок отличается от Submitter и не сериализуется.
	PayoutID uuid.UUID `json:"-"`
}

// Anonymous сообщает, скрыт ли отправитель.
func (s *Submission) Anonymous() bool {
	return s.Submitter == AnonymousSubmitter
}
