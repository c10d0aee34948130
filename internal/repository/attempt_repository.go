package repository

import (
	"context"
	"fmt"
	"time"

	"learnloop/internal/domain"
	"learnloop/internal/repository/models"
	"learnloop/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
// Attempt rows are append-only; there are no update statements here.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func fromDomainAttempt(a *domain.Attempt) *models.QuizAttempt {
	coord := a.Coordinate.Normalized()
	return &models.QuizAttempt{
		ID:               a.ID,
		StudentID:        a.StudentID,
		SetID:            a.SetID,
		ClassNumber:      coord.ClassNumber,
		Subject:          coord.Subject,
		Chapter:          coord.Chapter,
		Topic:            coord.Topic,
		Difficulty:       util.StringToNullString(coord.Difficulty),
		CorrectCount:     a.CorrectCount,
		IncorrectCount:   a.IncorrectCount,
		TotalQuestions:   a.TotalQuestions,
		ScorePercentage:  a.ScorePercentage,
		FeatMemorization: a.Features.Memorization,
		FeatReasoning:    a.Features.Reasoning,
		FeatNumerical:    a.Features.Numerical,
		FeatLanguage:     a.Features.Language,
		SubmittedAt:      a.SubmittedAt,
	}
}

func toDomainAttempt(m *models.QuizAttempt) domain.Attempt {
	return domain.Attempt{
		ID:        m.ID,
		StudentID: m.StudentID,
		SetID:     m.SetID,
		Coordinate: domain.CurriculumCoordinate{
			ClassNumber: m.ClassNumber,
			Subject:     m.Subject,
			Chapter:     m.Chapter,
			Topic:       m.Topic,
			Difficulty:  m.Difficulty.String,
		},
		CorrectCount:    m.CorrectCount,
		IncorrectCount:  m.IncorrectCount,
		TotalQuestions:  m.TotalQuestions,
		ScorePercentage: m.ScorePercentage,
		Features: domain.FeatureVector{
			Memorization: m.FeatMemorization,
			Reasoning:    m.FeatReasoning,
			Numerical:    m.FeatNumerical,
			Language:     m.FeatLanguage,
		},
		SubmittedAt: m.SubmittedAt,
	}
}

// SaveAttempt inserts the attempt and its per-question answers in one
// transaction.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now()
	}
	m := fromDomainAttempt(attempt)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	attemptQuery := `INSERT INTO quiz_attempts (ID, STUDENT_ID, SET_ID, CLASS_NUMBER, SUBJECT, CHAPTER, TOPIC, DIFFICULTY, CORRECT_COUNT, INCORRECT_COUNT, TOTAL_QUESTIONS, SCORE_PERCENTAGE, FEAT_MEMORIZATION, FEAT_REASONING, FEAT_NUMERICAL, FEAT_LANGUAGE, SUBMITTED_AT)
	                 VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16, :17)`
	_, err = tx.ExecContext(ctx, attemptQuery,
		m.ID,
		m.StudentID,
		m.SetID,
		m.ClassNumber,
		m.Subject,
		m.Chapter,
		m.Topic,
		m.Difficulty,
		m.CorrectCount,
		m.IncorrectCount,
		m.TotalQuestions,
		m.ScorePercentage,
		m.FeatMemorization,
		m.FeatReasoning,
		m.FeatNumerical,
		m.FeatLanguage,
		m.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz attempt: %w", err)
	}

	answerQuery := `INSERT INTO attempt_answers (ID, ATTEMPT_ID, QUESTION_ID, SELECTED_OPTION, IS_CORRECT)
	                VALUES (:1, :2, :3, :4, :5)`
	for _, ans := range attempt.Answers {
		isCorrect := 0
		if ans.IsCorrect {
			isCorrect = 1
		}
		_, err = tx.ExecContext(ctx, answerQuery,
			util.NewULID(),
			attempt.ID,
			ans.QuestionID,
			ans.SelectedOption,
			isCorrect,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attempt answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attempt: %w", err)
	}
	return nil
}

// ListAttemptedSetIDs returns the ids of sets the student has already
// attempted for the exact coordinate, using the same difficulty equivalence
// as set matching.
func (r *sqlxAttemptRepository) ListAttemptedSetIDs(ctx context.Context, studentID string, coord domain.CurriculumCoordinate) ([]string, error) {
	coord = coord.Normalized()

	query := `SELECT DISTINCT set_id FROM quiz_attempts
	          WHERE student_id = :1 AND class_number = :2 AND subject = :3 AND chapter = :4 AND topic = :5`
	args := []interface{}{studentID, coord.ClassNumber, coord.Subject, coord.Chapter, coord.Topic}

	if coord.Difficulty == "" || coord.Difficulty == domain.DifficultyMedium {
		query += ` AND (difficulty IS NULL OR difficulty = :6)`
		args = append(args, domain.DifficultyMedium)
	} else {
		query += ` AND difficulty = :6`
		args = append(args, coord.Difficulty)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempted set ids: %w", err)
	}
	defer rows.Close()

	var setIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan attempted set id: %w", err)
		}
		setIDs = append(setIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempted set ids: %w", err)
	}
	return setIDs, nil
}

// ListAttemptsByStudent retrieves a page of a student's attempts for a
// subject, newest first, with the total count.
func (r *sqlxAttemptRepository) ListAttemptsByStudent(ctx context.Context, studentID, subject string, limit, offset int) ([]domain.Attempt, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	// Oracle compatibility: ROW_NUMBER() window instead of LIMIT/OFFSET.
	innerQuery := `SELECT ID, STUDENT_ID, SET_ID, CLASS_NUMBER, SUBJECT, CHAPTER, TOPIC, DIFFICULTY, CORRECT_COUNT, INCORRECT_COUNT, TOTAL_QUESTIONS, SCORE_PERCENTAGE, FEAT_MEMORIZATION, FEAT_REASONING, FEAT_NUMERICAL, FEAT_LANGUAGE, SUBMITTED_AT,
	                ROW_NUMBER() OVER (ORDER BY submitted_at DESC) as rn
	                FROM quiz_attempts WHERE student_id = :1 AND subject = :2`
	resultsQuery := fmt.Sprintf("SELECT * FROM (%s) WHERE rn > %d AND rn <= %d", innerQuery, offset, offset+limit)
	countQuery := `SELECT COUNT(*) FROM quiz_attempts WHERE student_id = :1 AND subject = :2`
	args := []interface{}{studentID, subject}

	rows, err := r.db.QueryContext(ctx, resultsQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attempts for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var attempts []domain.Attempt
	for rows.Next() {
		var m models.QuizAttempt
		var rn int
		if err := rows.Scan(&m.ID, &m.StudentID, &m.SetID, &m.ClassNumber, &m.Subject, &m.Chapter, &m.Topic, &m.Difficulty,
			&m.CorrectCount, &m.IncorrectCount, &m.TotalQuestions, &m.ScorePercentage,
			&m.FeatMemorization, &m.FeatReasoning, &m.FeatNumerical, &m.FeatLanguage, &m.SubmittedAt, &rn); err != nil {
			return nil, 0, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempts = append(attempts, toDomainAttempt(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate quiz attempts: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}

	return attempts, total, nil
}
