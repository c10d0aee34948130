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

// sqlxQuestionSetRepository implements domain.QuestionSetRepository using sqlx.
type sqlxQuestionSetRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionSetRepository creates a new instance of sqlxQuestionSetRepository.
func NewSQLXQuestionSetRepository(db *sqlx.DB) domain.QuestionSetRepository {
	return &sqlxQuestionSetRepository{db: db}
}

func toDomainQuestion(m *models.Question) domain.Question {
	return domain.Question{
		ID:            m.ID,
		Prompt:        m.Prompt,
		Options:       m.Options,
		CorrectOption: m.CorrectOption,
		SkillTags:     m.SkillTags,
		Features: domain.FeatureVector{
			Memorization: m.FeatMemorization,
			Reasoning:    m.FeatReasoning,
			Numerical:    m.FeatNumerical,
			Language:     m.FeatLanguage,
		},
		DifficultyScore: m.DifficultyScore,
	}
}

func fromDomainQuestion(setID string, position int, q *domain.Question) *models.Question {
	return &models.Question{
		ID:               q.ID,
		SetID:            setID,
		Position:         position,
		Prompt:           q.Prompt,
		Options:          models.StringSlice(q.Options),
		CorrectOption:    q.CorrectOption,
		SkillTags:        models.StringSlice(q.SkillTags),
		FeatMemorization: q.Features.Memorization,
		FeatReasoning:    q.Features.Reasoning,
		FeatNumerical:    q.Features.Numerical,
		FeatLanguage:     q.Features.Language,
		DifficultyScore:  q.DifficultyScore,
	}
}

func toDomainQuestionSet(m *models.QuestionSet, questions []domain.Question) *domain.QuestionSet {
	if m == nil {
		return nil
	}
	return &domain.QuestionSet{
		ID: m.ID,
		Coordinate: domain.CurriculumCoordinate{
			ClassNumber: m.ClassNumber,
			Subject:     m.Subject,
			Chapter:     m.Chapter,
			Topic:       m.Topic,
			Difficulty:  m.Difficulty.String,
		},
		Questions:       questions,
		DifficultyLevel: m.DifficultyLevel,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// SaveQuestionSet inserts the set and its questions in one transaction.
func (r *sqlxQuestionSetRepository) SaveQuestionSet(ctx context.Context, set *domain.QuestionSet) error {
	if set.ID == "" {
		set.ID = util.NewULID()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now()
	}
	coord := set.Coordinate.Normalized()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	setQuery := `INSERT INTO question_sets (ID, CLASS_NUMBER, SUBJECT, CHAPTER, TOPIC, DIFFICULTY, DIFFICULTY_LEVEL, CREATED_BY, CREATED_AT)
	             VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	_, err = tx.ExecContext(ctx, setQuery,
		set.ID,
		coord.ClassNumber,
		coord.Subject,
		coord.Chapter,
		coord.Topic,
		util.StringToNullString(coord.Difficulty),
		set.DifficultyLevel,
		set.CreatedBy,
		set.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question set: %w", err)
	}

	questionQuery := `INSERT INTO questions (ID, SET_ID, POSITION, PROMPT, OPTIONS, CORRECT_OPTION, SKILL_TAGS, FEAT_MEMORIZATION, FEAT_REASONING, FEAT_NUMERICAL, FEAT_LANGUAGE, DIFFICULTY_SCORE)
	                  VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12)`
	for i := range set.Questions {
		q := &set.Questions[i]
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		m := fromDomainQuestion(set.ID, i, q)

		optionsVal, err := m.Options.Value()
		if err != nil {
			return fmt.Errorf("failed to convert options to string: %w", err)
		}
		tagsVal, err := m.SkillTags.Value()
		if err != nil {
			return fmt.Errorf("failed to convert skill tags to string: %w", err)
		}

		_, err = tx.ExecContext(ctx, questionQuery,
			m.ID,
			m.SetID,
			m.Position,
			m.Prompt,
			optionsVal,
			m.CorrectOption,
			tagsVal,
			m.FeatMemorization,
			m.FeatReasoning,
			m.FeatNumerical,
			m.FeatLanguage,
			m.DifficultyScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question set: %w", err)
	}
	return nil
}

// GetQuestionSetByID retrieves a set with its questions, or nil if absent.
func (r *sqlxQuestionSetRepository) GetQuestionSetByID(ctx context.Context, setID string) (*domain.QuestionSet, error) {
	query := `SELECT ID, CLASS_NUMBER, SUBJECT, CHAPTER, TOPIC, DIFFICULTY, DIFFICULTY_LEVEL, CREATED_BY, CREATED_AT
	          FROM question_sets WHERE id = :1`

	var m models.QuestionSet
	row := r.db.QueryRowContext(ctx, query, setID)
	err := row.Scan(&m.ID, &m.ClassNumber, &m.Subject, &m.Chapter, &m.Topic, &m.Difficulty, &m.DifficultyLevel, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question set %s: %w", setID, err)
	}

	questions, err := r.loadQuestions(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainQuestionSet(&m, questions), nil
}

// FindQuestionSetsByCoordinate returns all sets matching the coordinate.
// A coordinate without a difficulty label matches unlabeled and medium sets.
func (r *sqlxQuestionSetRepository) FindQuestionSetsByCoordinate(ctx context.Context, coord domain.CurriculumCoordinate) ([]*domain.QuestionSet, error) {
	coord = coord.Normalized()

	query := `SELECT ID, CLASS_NUMBER, SUBJECT, CHAPTER, TOPIC, DIFFICULTY, DIFFICULTY_LEVEL, CREATED_BY, CREATED_AT
	          FROM question_sets
	          WHERE class_number = :1 AND subject = :2 AND chapter = :3 AND topic = :4`
	args := []interface{}{coord.ClassNumber, coord.Subject, coord.Chapter, coord.Topic}

	if coord.Difficulty == "" || coord.Difficulty == domain.DifficultyMedium {
		query += ` AND (difficulty IS NULL OR difficulty = :5)`
		args = append(args, domain.DifficultyMedium)
	} else {
		query += ` AND difficulty = :5`
		args = append(args, coord.Difficulty)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query question sets by coordinate: %w", err)
	}
	defer rows.Close()

	var modelSets []models.QuestionSet
	for rows.Next() {
		var m models.QuestionSet
		if err := rows.Scan(&m.ID, &m.ClassNumber, &m.Subject, &m.Chapter, &m.Topic, &m.Difficulty, &m.DifficultyLevel, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question set: %w", err)
		}
		modelSets = append(modelSets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question sets: %w", err)
	}

	sets := make([]*domain.QuestionSet, 0, len(modelSets))
	for i := range modelSets {
		questions, err := r.loadQuestions(ctx, modelSets[i].ID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, toDomainQuestionSet(&modelSets[i], questions))
	}
	return sets, nil
}

func (r *sqlxQuestionSetRepository) loadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	query := `SELECT ID, SET_ID, POSITION, PROMPT, OPTIONS, CORRECT_OPTION, SKILL_TAGS, FEAT_MEMORIZATION, FEAT_REASONING, FEAT_NUMERICAL, FEAT_LANGUAGE, DIFFICULTY_SCORE
	          FROM questions WHERE set_id = :1 ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for set %s: %w", setID, err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var m models.Question
		if err := rows.Scan(&m.ID, &m.SetID, &m.Position, &m.Prompt, &m.Options, &m.CorrectOption, &m.SkillTags,
			&m.FeatMemorization, &m.FeatReasoning, &m.FeatNumerical, &m.FeatLanguage, &m.DifficultyScore); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, toDomainQuestion(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}
