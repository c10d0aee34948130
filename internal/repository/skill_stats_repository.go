package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnloop/internal/domain"
	"learnloop/internal/repository/models"
	"learnloop/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSkillStatsRepository implements domain.SkillStatsRepository using sqlx.
type sqlxSkillStatsRepository struct {
	db *sqlx.DB
}

// NewSQLXSkillStatsRepository creates a new instance of sqlxSkillStatsRepository.
func NewSQLXSkillStatsRepository(db *sqlx.DB) domain.SkillStatsRepository {
	return &sqlxSkillStatsRepository{db: db}
}

func toDomainSkillStats(m *models.SkillStats) *domain.SkillStats {
	if m == nil {
		return nil
	}
	return &domain.SkillStats{
		ID:                     m.ID,
		StudentID:              m.StudentID,
		Subject:                m.Subject,
		TotalQuestionsAnswered: m.TotalQuestionsAnswered,
		CorrectCount:           m.CorrectCount,
		IncorrectCount:         m.IncorrectCount,
		AccuracyPercentage:     m.AccuracyPercentage,
		Skills:                 m.Skills,
		Features: domain.FeatureVector{
			Memorization: m.FeatMemorization,
			Reasoning:    m.FeatReasoning,
			Numerical:    m.FeatNumerical,
			Language:     m.FeatLanguage,
		},
		LastAttemptAt: m.LastAttemptAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainSkillStats(s *domain.SkillStats) *models.SkillStats {
	if s == nil {
		return nil
	}
	return &models.SkillStats{
		ID:                     s.ID,
		StudentID:              s.StudentID,
		Subject:                s.Subject,
		TotalQuestionsAnswered: s.TotalQuestionsAnswered,
		CorrectCount:           s.CorrectCount,
		IncorrectCount:         s.IncorrectCount,
		AccuracyPercentage:     s.AccuracyPercentage,
		Skills:                 models.SkillScoreMap(s.Skills),
		FeatMemorization:       s.Features.Memorization,
		FeatReasoning:          s.Features.Reasoning,
		FeatNumerical:          s.Features.Numerical,
		FeatLanguage:           s.Features.Language,
		LastAttemptAt:          s.LastAttemptAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

// GetByStudentAndSubject returns the record for the pair, or nil if the
// student has no attempts for the subject yet.
func (r *sqlxSkillStatsRepository) GetByStudentAndSubject(ctx context.Context, studentID, subject string) (*domain.SkillStats, error) {
	query := `SELECT ID, STUDENT_ID, SUBJECT, TOTAL_QUESTIONS_ANSWERED, CORRECT_COUNT, INCORRECT_COUNT, ACCURACY_PERCENTAGE, SKILLS, FEAT_MEMORIZATION, FEAT_REASONING, FEAT_NUMERICAL, FEAT_LANGUAGE, LAST_ATTEMPT_AT, UPDATED_AT
	          FROM skill_stats WHERE student_id = :1 AND subject = :2`

	var m models.SkillStats
	row := r.db.QueryRowContext(ctx, query, studentID, subject)
	err := row.Scan(&m.ID, &m.StudentID, &m.Subject, &m.TotalQuestionsAnswered, &m.CorrectCount, &m.IncorrectCount,
		&m.AccuracyPercentage, &m.Skills, &m.FeatMemorization, &m.FeatReasoning, &m.FeatNumerical, &m.FeatLanguage,
		&m.LastAttemptAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill stats for student %s subject %s: %w", studentID, subject, err)
	}
	return toDomainSkillStats(&m), nil
}

// Upsert writes the record in a single MERGE statement, keyed by the unique
// (student_id, subject) index, so the row lands in one round trip whether it
// is the first attempt or the hundredth.
func (r *sqlxSkillStatsRepository) Upsert(ctx context.Context, stats *domain.SkillStats) error {
	if stats.ID == "" {
		stats.ID = util.NewULID()
	}
	if stats.UpdatedAt.IsZero() {
		stats.UpdatedAt = time.Now()
	}
	m := fromDomainSkillStats(stats)

	skillsVal, err := m.Skills.Value()
	if err != nil {
		return fmt.Errorf("failed to convert skills map to string: %w", err)
	}

	query := `MERGE INTO skill_stats t
	          USING (SELECT :1 AS student_id, :2 AS subject FROM dual) s
	          ON (t.student_id = s.student_id AND t.subject = s.subject)
	          WHEN MATCHED THEN UPDATE SET
	            t.total_questions_answered = :3,
	            t.correct_count = :4,
	            t.incorrect_count = :5,
	            t.accuracy_percentage = :6,
	            t.skills = :7,
	            t.feat_memorization = :8,
	            t.feat_reasoning = :9,
	            t.feat_numerical = :10,
	            t.feat_language = :11,
	            t.last_attempt_at = :12,
	            t.updated_at = :13
	          WHEN NOT MATCHED THEN INSERT
	            (id, student_id, subject, total_questions_answered, correct_count, incorrect_count, accuracy_percentage, skills, feat_memorization, feat_reasoning, feat_numerical, feat_language, last_attempt_at, updated_at)
	            VALUES (:14, :1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13)`

	_, err = r.db.ExecContext(ctx, query,
		m.StudentID,
		m.Subject,
		m.TotalQuestionsAnswered,
		m.CorrectCount,
		m.IncorrectCount,
		m.AccuracyPercentage,
		skillsVal,
		m.FeatMemorization,
		m.FeatReasoning,
		m.FeatNumerical,
		m.FeatLanguage,
		m.LastAttemptAt,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill stats: %w", err)
	}
	return nil
}
