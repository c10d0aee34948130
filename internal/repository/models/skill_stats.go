package models

import "time"

// SkillStats is the persistence model for the running per-(student, subject)
// record. The skills map is a JSON CLOB; a unique index on
// (student_id, subject) backs the MERGE upsert.
type SkillStats struct {
	ID                     string        `db:"id"`
	StudentID              string        `db:"student_id"`
	Subject                string        `db:"subject"`
	TotalQuestionsAnswered int           `db:"total_questions_answered"`
	CorrectCount           int           `db:"correct_count"`
	IncorrectCount         int           `db:"incorrect_count"`
	AccuracyPercentage     float64       `db:"accuracy_percentage"`
	Skills                 SkillScoreMap `db:"skills"`
	FeatMemorization       float64       `db:"feat_memorization"`
	FeatReasoning          float64       `db:"feat_reasoning"`
	FeatNumerical          float64       `db:"feat_numerical"`
	FeatLanguage           float64       `db:"feat_language"`
	LastAttemptAt          time.Time     `db:"last_attempt_at"`
	UpdatedAt              time.Time     `db:"updated_at"`
}

func (SkillStats) TableName() string {
	return "skill_stats"
}
