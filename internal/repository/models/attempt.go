package models

import (
	"database/sql"
	"time"
)

// QuizAttempt is the persistence model for a graded submission. The
// curriculum coordinate is denormalized from the set for query convenience.
type QuizAttempt struct {
	ID               string         `db:"id"`
	StudentID        string         `db:"student_id"`
	SetID            string         `db:"set_id"`
	ClassNumber      int            `db:"class_number"`
	Subject          string         `db:"subject"`
	Chapter          string         `db:"chapter"`
	Topic            string         `db:"topic"`
	Difficulty       sql.NullString `db:"difficulty"`
	CorrectCount     int            `db:"correct_count"`
	IncorrectCount   int            `db:"incorrect_count"`
	TotalQuestions   int            `db:"total_questions"`
	ScorePercentage  float64        `db:"score_percentage"`
	FeatMemorization float64        `db:"feat_memorization"`
	FeatReasoning    float64        `db:"feat_reasoning"`
	FeatNumerical    float64        `db:"feat_numerical"`
	FeatLanguage     float64        `db:"feat_language"`
	SubmittedAt      time.Time      `db:"submitted_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AttemptAnswer is one graded answer row. SelectedOption is -1 for
// unanswered questions.
type AttemptAnswer struct {
	ID             string `db:"id"`
	AttemptID      string `db:"attempt_id"`
	QuestionID     string `db:"question_id"`
	SelectedOption int    `db:"selected_option"`
	IsCorrect      int    `db:"is_correct"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
