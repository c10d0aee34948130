package service

import (
	"context"

	"learnloop/internal/domain"
	"learnloop/internal/logger"

	"go.uber.org/zap"
)

// SkillAggregator folds graded attempts into per-student running stats and
// computes class-level aggregates.
type SkillAggregator struct {
	stats domain.SkillStatsRepository
	locks *keyedMutex
}

// NewSkillAggregator creates a new SkillAggregator.
func NewSkillAggregator(stats domain.SkillStatsRepository) *SkillAggregator {
	return &SkillAggregator{
		stats: stats,
		locks: newKeyedMutex(),
	}
}

// MergeAttempt folds the attempt into the student's stats record for the
// attempt's subject and persists the result. The read-merge-write is
// serialized per (student, subject) pair.
func (a *SkillAggregator) MergeAttempt(ctx context.Context, attempt *domain.Attempt, skillScores []domain.SkillScore) (*domain.SkillStats, error) {
	subject := attempt.Coordinate.Subject

	unlock := a.locks.Lock(attempt.StudentID + "|" + subject)
	defer unlock()

	stats, err := a.stats.GetByStudentAndSubject(ctx, attempt.StudentID, subject)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load skill stats", err)
	}
	if stats == nil {
		stats = domain.NewSkillStatsFromAttempt(attempt, skillScores)
	} else {
		stats.Merge(attempt, skillScores)
	}

	if err := a.stats.Upsert(ctx, stats); err != nil {
		return nil, domain.NewInternalError("Failed to persist skill stats", err)
	}

	logger.Get().Info("Merged attempt into skill stats",
		zap.String("studentID", attempt.StudentID),
		zap.String("subject", subject),
		zap.Int("totalQuestionsAnswered", stats.TotalQuestionsAnswered),
		zap.Float64("accuracyPercentage", stats.AccuracyPercentage))
	return stats, nil
}

// AggregateClass computes the cohort aggregate for a subject over the given
// roster. Students without a stats record for the subject are skipped.
func (a *SkillAggregator) AggregateClass(ctx context.Context, subject string, studentIDs []string) (*domain.ClassSkillStats, error) {
	var records []*domain.SkillStats
	for _, id := range studentIDs {
		stats, err := a.stats.GetByStudentAndSubject(ctx, id, subject)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load skill stats for class aggregate", err)
		}
		if stats != nil {
			records = append(records, stats)
		}
	}
	return domain.AggregateClassStats(subject, records), nil
}
