package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"learnloop/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func skillStatsColumns() []string {
	return []string{"ID", "STUDENT_ID", "SUBJECT", "TOTAL_QUESTIONS_ANSWERED", "CORRECT_COUNT", "INCORRECT_COUNT",
		"ACCURACY_PERCENTAGE", "SKILLS", "FEAT_MEMORIZATION", "FEAT_REASONING", "FEAT_NUMERICAL", "FEAT_LANGUAGE",
		"LAST_ATTEMPT_AT", "UPDATED_AT"}
}

func TestGetByStudentAndSubject(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSkillStatsRepository(db)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	skillsJSON := `{"optics":{"skill":"optics","score":0.7,"mastery_level":"competent","questions_answered":20}}`

	mock.ExpectQuery(`FROM skill_stats WHERE student_id = :1 AND subject = :2`).
		WithArgs("student-1", "science").
		WillReturnRows(sqlmock.NewRows(skillStatsColumns()).
			AddRow("stats-1", "student-1", "science", 20, 14, 6, 70.0, skillsJSON, 0.4, 0.6, 0.2, 0.3, now, now))

	stats, err := repo.GetByStudentAndSubject(context.Background(), "student-1", "science")

	assert.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Equal(t, 20, stats.TotalQuestionsAnswered)
	assert.InDelta(t, 0.7, stats.Skills["optics"].Score, 1e-9)
	assert.Equal(t, domain.MasteryCompetent, stats.Skills["optics"].MasteryLevel)
	assert.InDelta(t, 0.6, stats.Features.Reasoning, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByStudentAndSubjectNoRecord(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSkillStatsRepository(db)

	mock.ExpectQuery(`FROM skill_stats WHERE student_id = :1 AND subject = :2`).
		WithArgs("student-1", "history").
		WillReturnError(sql.ErrNoRows)

	stats, err := repo.GetByStudentAndSubject(context.Background(), "student-1", "history")

	assert.NoError(t, err)
	assert.Nil(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSkillStats(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSkillStatsRepository(db)

	mock.ExpectExec(`MERGE INTO skill_stats`).WillReturnResult(sqlmock.NewResult(0, 1))

	stats := &domain.SkillStats{
		StudentID:              "student-1",
		Subject:                "science",
		TotalQuestionsAnswered: 10,
		CorrectCount:           6,
		IncorrectCount:         4,
		AccuracyPercentage:     60,
		Skills: map[string]domain.SkillScore{
			"optics": {Skill: "optics", Score: 0.6, MasteryLevel: domain.MasteryCompetent, QuestionsAnswered: 10},
		},
		LastAttemptAt: time.Now(),
	}

	err := repo.Upsert(context.Background(), stats)

	assert.NoError(t, err)
	assert.NotEmpty(t, stats.ID)
	assert.False(t, stats.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
