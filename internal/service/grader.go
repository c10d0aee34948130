package service

import (
	"context"
	"sort"
	"time"

	"learnloop/internal/domain"
	"learnloop/internal/logger"
	"learnloop/internal/util"

	"go.uber.org/zap"
)

// Grader scores a submission against its question set and persists the
// resulting attempt.
type Grader struct {
	attempts domain.AttemptRepository
}

// NewGrader creates a new Grader.
func NewGrader(attempts domain.AttemptRepository) *Grader {
	return &Grader{attempts: attempts}
}

// Grade scores answers against set, persists the attempt and returns it with
// the per-skill breakdown. Every question in the set is scored: a missing
// answer counts as incorrect with the unanswered sentinel, and answers for
// question ids outside the set are dropped.
func (g *Grader) Grade(ctx context.Context, studentID string, set *domain.QuestionSet, answers map[string]int) (*domain.Attempt, []domain.SkillScore, error) {
	attempt := &domain.Attempt{
		ID:             util.NewULID(),
		StudentID:      studentID,
		SetID:          set.ID,
		Coordinate:     set.Coordinate,
		TotalQuestions: len(set.Questions),
		SubmittedAt:    time.Now(),
	}

	var featureSum domain.FeatureVector
	skillTotals := make(map[string]int)
	skillCorrect := make(map[string]int)

	for i := range set.Questions {
		q := &set.Questions[i]

		selected, answered := answers[q.ID]
		if !answered {
			selected = domain.UnansweredOption
		}
		isCorrect := answered && selected == q.CorrectOption

		attempt.Answers = append(attempt.Answers, domain.QuestionAnswer{
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		})
		if isCorrect {
			attempt.CorrectCount++
			// Only demonstrated ability feeds the feature profile.
			featureSum = featureSum.Add(q.Features)
		} else {
			attempt.IncorrectCount++
		}

		for _, tag := range q.SkillTags {
			skillTotals[tag]++
			if isCorrect {
				skillCorrect[tag]++
			}
		}
	}

	if attempt.CorrectCount > 0 {
		attempt.Features = featureSum.Scale(1 / float64(attempt.CorrectCount))
	}
	if attempt.TotalQuestions > 0 {
		attempt.ScorePercentage = 100 * float64(attempt.CorrectCount) / float64(attempt.TotalQuestions)
	}

	if err := attempt.Validate(); err != nil {
		return nil, nil, err
	}

	skillScores := make([]domain.SkillScore, 0, len(skillTotals))
	for tag, total := range skillTotals {
		score := float64(skillCorrect[tag]) / float64(total)
		skillScores = append(skillScores, domain.SkillScore{
			Skill:             tag,
			Score:             score,
			MasteryLevel:      domain.MasteryLevelForScore(score),
			QuestionsAnswered: total,
		})
	}
	sort.Slice(skillScores, func(i, j int) bool {
		return skillScores[i].Skill < skillScores[j].Skill
	})

	if err := g.attempts.SaveAttempt(ctx, attempt); err != nil {
		return nil, nil, domain.NewInternalError("Failed to persist attempt", err)
	}

	logger.Get().Info("Graded attempt",
		zap.String("attemptID", attempt.ID),
		zap.String("studentID", studentID),
		zap.String("setID", set.ID),
		zap.Int("correct", attempt.CorrectCount),
		zap.Float64("scorePercentage", attempt.ScorePercentage))
	return attempt, skillScores, nil
}
