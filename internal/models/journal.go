package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry — строка аудиторского журнала в Postgres.
type JournalEntry struct {
	ID           int64     `db:"id" json:"id"`
	Type         string    `db:"type" json:"type"`
	SubmissionID int64     `db:"submission_id" json:"submission_id"`
	Party        uuid.UUID `db:"party" json:"party"`
	Amount       float64   `db:"amount" json:"amount"`
	Payload      []byte    `db:"payload" json:"payload,omitempty"`
	OccurredAt   time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
