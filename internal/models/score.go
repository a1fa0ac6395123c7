package models

import "time"

type Evaluation struct {
	ID            int64     `db:"id" json:"id"`
	CompetitorID  string    `db:"competitor_id" json:"competitor_id"`
	Tanbih        int       `db:"tanbih" json:"tanbih"`
	Fateh         int       `db:"fateh" json:"fateh"`
	Tashkeel      int       `db:"tashkeel" json:"tashkeel"`
	Tajweed       int       `db:"tajweed" json:"tajweed"`
	FinalScore    float64   `db:"final_score" json:"final_score"`
	EvaluatorName string    `db:"evaluator_name" json:"evaluator_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ActiveEvaluation: кто сейчас на оценке в уровне. Запись не очищается после сохранения.
type ActiveEvaluation struct {
	Level        string    `db:"level" json:"level"`
	CompetitorID string    `db:"competitor_id" json:"competitor_id"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Result: оценка вместе с участником, только для чтения.
type Result struct {
	Evaluation
	Competitor Competitor `json:"competitor"`
}
