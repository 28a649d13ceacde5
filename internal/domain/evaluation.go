package domain

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

type Evaluation struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	EvaluatorID int64     `json:"evaluator_id"`
	Score       int       `json:"score"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}
