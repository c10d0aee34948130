package service

import (
	"context"
	"os"
	"testing"
	"time"

	"learnloop/internal/config"
	"learnloop/internal/domain"
	"learnloop/internal/logger"

	"github.com/stretchr/testify/mock"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "info"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- MockQuestionSetRepository ---
type MockQuestionSetRepository struct {
	mock.Mock
}

func (m *MockQuestionSetRepository) SaveQuestionSet(ctx context.Context, set *domain.QuestionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) GetQuestionSetByID(ctx context.Context, setID string) (*domain.QuestionSet, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) FindQuestionSetsByCoordinate(ctx context.Context, coord domain.CurriculumCoordinate) ([]*domain.QuestionSet, error) {
	args := m.Called(ctx, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionSet), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListAttemptedSetIDs(ctx context.Context, studentID string, coord domain.CurriculumCoordinate) ([]string, error) {
	args := m.Called(ctx, studentID, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttemptRepository) ListAttemptsByStudent(ctx context.Context, studentID, subject string, limit, offset int) ([]domain.Attempt, int, error) {
	args := m.Called(ctx, studentID, subject, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Attempt), args.Int(1), args.Error(2)
}

// --- MockSkillStatsRepository ---
type MockSkillStatsRepository struct {
	mock.Mock
}

func (m *MockSkillStatsRepository) GetByStudentAndSubject(ctx context.Context, studentID, subject string) (*domain.SkillStats, error) {
	args := m.Called(ctx, studentID, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillStats), args.Error(1)
}

func (m *MockSkillStatsRepository) Upsert(ctx context.Context, stats *domain.SkillStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

// --- MockChapterTextProvider ---
type MockChapterTextProvider struct {
	mock.Mock
}

func (m *MockChapterTextProvider) GetChapterText(ctx context.Context, classNumber int, subject, chapter string) (string, error) {
	args := m.Called(ctx, classNumber, subject, chapter)
	return args.String(0), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, chapterText string, hints domain.GenerationHints, count int) ([]domain.Question, error) {
	args := m.Called(ctx, chapterText, hints, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- test fixtures ---

func testCoordinate() domain.CurriculumCoordinate {
	return domain.CurriculumCoordinate{
		ClassNumber: 8,
		Subject:     "science",
		Chapter:     "Light",
		Topic:       "Refraction",
		Difficulty:  domain.DifficultyMedium,
	}
}

func testQuestion(id string, correctOption int, tags ...string) domain.Question {
	if len(tags) == 0 {
		tags = []string{"optics"}
	}
	return domain.Question{
		ID:              id,
		Prompt:          "Prompt for " + id,
		Options:         []string{"A", "B", "C", "D"},
		CorrectOption:   correctOption,
		SkillTags:       tags,
		Features:        domain.FeatureVector{Memorization: 0.4, Reasoning: 0.6, Numerical: 0.2, Language: 0.3},
		DifficultyScore: 0.5,
	}
}

func testQuestionSet(id string, questions ...domain.Question) *domain.QuestionSet {
	return &domain.QuestionSet{
		ID:              id,
		Coordinate:      testCoordinate(),
		Questions:       questions,
		DifficultyLevel: 5,
		CreatedBy:       "student-1",
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}
