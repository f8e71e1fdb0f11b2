package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
)

// JournalRepository хранит аудиторский след уведомлений движка.
// Журнал — write-behind: источником истины остаётся движок.
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository создаёт экземпляр репозитория.
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Append дописывает уведомление в журнал.
func (r *JournalRepository) Append(ctx context.Context, event models.Event) error {
	var payload []byte
	if event.Data != nil {
		raw, err := json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("journal repository: marshal payload: %w", err)
		}
		payload = raw
	}

	query := `
		INSERT INTO events (type, submission_id, party, amount, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		event.Type,
		int64(event.SubmissionID),
		event.Party,
		event.Amount,
		payload,
		event.OccurredAt,
	); err != nil {
		return fmt.Errorf("journal repository: append: %w", err)
	}
	return nil
}

// ListBySubmission возвращает след конкретной заявки.
func (r *JournalRepository) ListBySubmission(ctx context.Context, submissionID uint64, limit, offset int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries := []models.JournalEntry{}
	query := `
		SELECT id, type, submission_id, party, amount, payload, occurred_at, created_at
		FROM events
		WHERE submission_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &entries, query, int64(submissionID), limit, offset); err != nil {
		return nil, fmt.Errorf("journal repository: list by submission: %w", err)
	}
	return entries, nil
}

// ListByParty возвращает след участника.
func (r *JournalRepository) ListByParty(ctx context.Context, party uuid.UUID, limit, offset int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries := []models.JournalEntry{}
	query := `
		SELECT id, type, submission_id, party, amount, payload, occurred_at, created_at
		FROM events
		WHERE party = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &entries, query, party, limit, offset); err != nil {
		return nil, fmt.Errorf("journal repository: list by party: %w", err)
	}
	return entries, nil
}
