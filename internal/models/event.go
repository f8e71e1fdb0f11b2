package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы уведомлений движка.
const (
	EventSubmissionCreated    = "submission_created"
	EventSubmissionCancelled  = "submission_cancelled"
	EventEvaluationRecorded   = "evaluation_recorded"
	EventSubmissionAccessed   = "submission_accessed"
	EventStakeSlashed         = "stake_slashed"
	EventTimeoutRefunded      = "timeout_refunded"
	EventWithdrawal           = "withdrawal"
	EventAgentRotated         = "agent_rotated"
	EventJournalistRegistered = "journalist_registered"
	EventApprovalChanged      = "approval_changed"
)

// Event — наблюдаемое уведомление об операции движка.
// Для анонимных заявок Party уже анонимизирован.
type Event struct {
	Type         string         `json:"type"`
	SubmissionID uint64         `json:"submission_id,omitempty"`
	Party        uuid.UUID      `json:"party,omitempty"`
	Amount       float64        `json:"amount,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Data         map[string]any `json:"data,omitempty"`
}
