package models

import "time"

// Evaluation — единственная и неизменяемая оценка заявки агентом.
type Evaluation struct {
	SubmissionID      uint64    `json:"submission_id"`
	Score             int       `json:"score"`
	RecommendedAction string    `json:"recommended_action"`
	EvaluatedAt       time.Time `json:"evaluated_at"`
}
