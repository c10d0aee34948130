package models

import (
	"database/sql"
	"time"
)

// QuestionSet is the persistence model for one immutable generated set.
type QuestionSet struct {
	ID              string         `db:"id"`
	ClassNumber     int            `db:"class_number"`
	Subject         string         `db:"subject"`
	Chapter         string         `db:"chapter"`
	Topic           string         `db:"topic"`
	Difficulty      sql.NullString `db:"difficulty"`
	DifficultyLevel int            `db:"difficulty_level"`
	CreatedBy       string         `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}

// Question is the persistence model for one question within a set. Options
// and skill tags are JSON CLOBs; the feature vector is flattened into four
// numeric columns so it stays queryable.
type Question struct {
	ID               string      `db:"id"`
	SetID            string      `db:"set_id"`
	Position         int         `db:"position"`
	Prompt           string      `db:"prompt"`
	Options          StringSlice `db:"options"`
	CorrectOption    int         `db:"correct_option"`
	SkillTags        StringSlice `db:"skill_tags"`
	FeatMemorization float64     `db:"feat_memorization"`
	FeatReasoning    float64     `db:"feat_reasoning"`
	FeatNumerical    float64     `db:"feat_numerical"`
	FeatLanguage     float64     `db:"feat_language"`
	DifficultyScore  float64     `db:"difficulty_score"`
}

func (Question) TableName() string {
	return "questions"
}

// SyllabusChapter backs the chapter-text collaborator.
type SyllabusChapter struct {
	ID          string    `db:"id"`
	ClassNumber int       `db:"class_number"`
	Subject     string    `db:"subject"`
	Chapter     string    `db:"chapter"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
}

func (SyllabusChapter) TableName() string {
	return "syllabus_chapters"
}
