package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"learnloop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testAttempt(correct, total int) *domain.Attempt {
	answers := make([]domain.QuestionAnswer, total)
	for i := 0; i < correct; i++ {
		answers[i].IsCorrect = true
	}
	return &domain.Attempt{
		ID:              "attempt-1",
		StudentID:       "student-1",
		SetID:           "set-1",
		Coordinate:      testCoordinate(),
		Answers:         answers,
		CorrectCount:    correct,
		IncorrectCount:  total - correct,
		TotalQuestions:  total,
		ScorePercentage: 100 * float64(correct) / float64(total),
		SubmittedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMergeAttemptCreatesRecordOnFirstAttempt(t *testing.T) {
	statsRepo := new(MockSkillStatsRepository)
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "student-1", "science").Return(nil, nil)
	statsRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SkillStats")).Return(nil)

	aggregator := NewSkillAggregator(statsRepo)

	attempt := testAttempt(6, 10)
	stats, err := aggregator.MergeAttempt(context.Background(), attempt, []domain.SkillScore{
		{Skill: "optics", Score: 0.6, QuestionsAnswered: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, 10, stats.TotalQuestionsAnswered)
	assert.InDelta(t, 60.0, stats.AccuracyPercentage, 1e-9)
	statsRepo.AssertExpectations(t)
}

func TestMergeAttemptFoldsIntoExistingRecord(t *testing.T) {
	statsRepo := new(MockSkillStatsRepository)
	existing := &domain.SkillStats{
		ID:                     "stats-1",
		StudentID:              "student-1",
		Subject:                "science",
		TotalQuestionsAnswered: 10,
		CorrectCount:           6,
		IncorrectCount:         4,
		AccuracyPercentage:     60,
		Skills: map[string]domain.SkillScore{
			"optics": {Skill: "optics", Score: 0.6, MasteryLevel: domain.MasteryCompetent, QuestionsAnswered: 10},
		},
	}
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "student-1", "science").Return(existing, nil)

	var persisted *domain.SkillStats
	statsRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SkillStats")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.SkillStats)
	}).Return(nil)

	aggregator := NewSkillAggregator(statsRepo)

	attempt := testAttempt(8, 10)
	stats, err := aggregator.MergeAttempt(context.Background(), attempt, []domain.SkillScore{
		{Skill: "optics", Score: 0.8, QuestionsAnswered: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, 20, stats.TotalQuestionsAnswered)
	assert.Equal(t, 14, stats.CorrectCount)
	assert.InDelta(t, 70.0, stats.AccuracyPercentage, 1e-9)
	assert.InDelta(t, 0.7, stats.Skills["optics"].Score, 1e-9)
	assert.Same(t, persisted, stats)
}

func TestMergeAttemptSerializesPerStudent(t *testing.T) {
	statsRepo := new(MockSkillStatsRepository)

	// Shared record that both merges read and write; without serialization the
	// second merge would observe the first's pre-merge state.
	record := &domain.SkillStats{
		StudentID: "student-1",
		Subject:   "science",
		Skills:    map[string]domain.SkillScore{},
	}
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "student-1", "science").Return(record, nil)
	statsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	aggregator := NewSkillAggregator(statsRepo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := aggregator.MergeAttempt(context.Background(), testAttempt(5, 10), []domain.SkillScore{
				{Skill: "optics", Score: 0.5, QuestionsAnswered: 10},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// All ten merges landed on the shared record.
	assert.Equal(t, 100, record.TotalQuestionsAnswered)
	assert.Equal(t, 50, record.CorrectCount)
}

func TestAggregateClassSkipsMissingStudents(t *testing.T) {
	statsRepo := new(MockSkillStatsRepository)
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "s1", "science").Return(&domain.SkillStats{
		StudentID:          "s1",
		AccuracyPercentage: 80,
		Skills:             map[string]domain.SkillScore{"optics": {Skill: "optics", Score: 0.8}},
	}, nil)
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "s2", "science").Return(nil, nil)
	statsRepo.On("GetByStudentAndSubject", mock.Anything, "s3", "science").Return(&domain.SkillStats{
		StudentID:          "s3",
		AccuracyPercentage: 60,
		Skills:             map[string]domain.SkillScore{"optics": {Skill: "optics", Score: 0.6}},
	}, nil)

	aggregator := NewSkillAggregator(statsRepo)

	agg, err := aggregator.AggregateClass(context.Background(), "science", []string{"s1", "s2", "s3"})

	assert.NoError(t, err)
	assert.Equal(t, 2, agg.StudentCount)
	assert.InDelta(t, 70.0, agg.MeanAccuracyPercentage, 1e-9)
	assert.InDelta(t, 0.7, agg.SkillMeans["optics"].Score, 1e-9)
}
