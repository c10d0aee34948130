package repository

import (
	"context"
	"testing"
	"time"

	"learnloop/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func testDomainAttempt() *domain.Attempt {
	return &domain.Attempt{
		StudentID: "student-1",
		SetID:     "set-1",
		Coordinate: domain.CurriculumCoordinate{
			ClassNumber: 8, Subject: "science", Chapter: "Light", Topic: "Refraction", Difficulty: "medium",
		},
		Answers: []domain.QuestionAnswer{
			{QuestionID: "q1", SelectedOption: 0, IsCorrect: true},
			{QuestionID: "q2", SelectedOption: domain.UnansweredOption, IsCorrect: false},
		},
		CorrectCount:    1,
		IncorrectCount:  1,
		TotalQuestions:  2,
		ScorePercentage: 50,
	}
}

func TestSaveAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quiz_attempts`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO attempt_answers`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO attempt_answers`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	attempt := testDomainAttempt()
	err := repo.SaveAttempt(context.Background(), attempt)

	assert.NoError(t, err)
	assert.NotEmpty(t, attempt.ID)
	assert.False(t, attempt.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAttemptRollsBackOnAnswerFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quiz_attempts`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO attempt_answers`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SaveAttempt(context.Background(), testDomainAttempt())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttemptedSetIDsDifficultyEquivalence(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	// No difficulty on the coordinate matches unlabeled and medium attempts.
	coord := domain.CurriculumCoordinate{ClassNumber: 8, Subject: "science", Chapter: "Light", Topic: "Refraction"}
	mock.ExpectQuery(`AND \(difficulty IS NULL OR difficulty = :6\)`).
		WithArgs("student-1", 8, "science", "Light", "Refraction", "medium").
		WillReturnRows(sqlmock.NewRows([]string{"SET_ID"}).AddRow("set-1").AddRow("set-2"))

	ids, err := repo.ListAttemptedSetIDs(context.Background(), "student-1", coord)

	assert.NoError(t, err)
	assert.Equal(t, []string{"set-1", "set-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttemptsByStudent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	submittedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"ID", "STUDENT_ID", "SET_ID", "CLASS_NUMBER", "SUBJECT", "CHAPTER", "TOPIC", "DIFFICULTY",
		"CORRECT_COUNT", "INCORRECT_COUNT", "TOTAL_QUESTIONS", "SCORE_PERCENTAGE",
		"FEAT_MEMORIZATION", "FEAT_REASONING", "FEAT_NUMERICAL", "FEAT_LANGUAGE", "SUBMITTED_AT", "RN"}

	mock.ExpectQuery(`ROW_NUMBER\(\) OVER \(ORDER BY submitted_at DESC\)`).
		WithArgs("student-1", "science").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("attempt-1", "student-1", "set-1", 8, "science", "Light", "Refraction", "medium",
				7, 3, 10, 70.0, 0.4, 0.6, 0.2, 0.3, submittedAt, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quiz_attempts`).
		WithArgs("student-1", "science").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(15))

	attempts, total, err := repo.ListAttemptsByStudent(context.Background(), "student-1", "science", 10, 0)

	assert.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, attempts, 1)
	assert.Equal(t, "attempt-1", attempts[0].ID)
	assert.Equal(t, 7, attempts[0].CorrectCount)
	assert.True(t, submittedAt.Equal(attempts[0].SubmittedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
