package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"learnloop/internal/domain"
	"learnloop/internal/logger"
	"learnloop/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// resolvedSet is the singleflight result for one generation.
type resolvedSet struct {
	set   *domain.QuestionSet
	isNew bool
}

// QuestionSetResolver serves a question set for a (student, coordinate)
// request: an already persisted set the student has not attempted when one
// exists, otherwise a freshly generated one.
type QuestionSetResolver struct {
	sets      domain.QuestionSetRepository
	attempts  domain.AttemptRepository
	chapters  domain.ChapterTextProvider
	generator domain.QuestionGenerator

	// pick selects a uniform index in [0,n). Injectable so resolver tests
	// are deterministic; the production default is math/rand.
	pick func(n int) int

	// sfGroup collapses concurrent generations for the same coordinate
	// within this process. Cross-process duplicates remain possible and are
	// tolerated: duplicate sets are valid and interchangeable.
	sfGroup singleflight.Group

	defaultNumQuestions int
}

// NewQuestionSetResolver creates a new QuestionSetResolver. A nil pick
// function falls back to a time-seeded uniform source.
func NewQuestionSetResolver(
	sets domain.QuestionSetRepository,
	attempts domain.AttemptRepository,
	chapters domain.ChapterTextProvider,
	generator domain.QuestionGenerator,
	pick func(n int) int,
	defaultNumQuestions int,
) *QuestionSetResolver {
	if pick == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		pick = rng.Intn
	}
	if defaultNumQuestions <= 0 {
		defaultNumQuestions = 10
	}
	return &QuestionSetResolver{
		sets:                sets,
		attempts:            attempts,
		chapters:            chapters,
		generator:           generator,
		pick:                pick,
		defaultNumQuestions: defaultNumQuestions,
	}
}

// Resolve returns an unattempted persisted set for the coordinate when one
// exists, otherwise generates, persists and returns a new one. isNew reports
// which path was taken.
func (r *QuestionSetResolver) Resolve(ctx context.Context, studentID string, coord domain.CurriculumCoordinate, numQuestions int) (*domain.QuestionSet, bool, error) {
	coord = coord.Normalized()
	if err := coord.Validate(); err != nil {
		return nil, false, err
	}
	if numQuestions <= 0 {
		numQuestions = r.defaultNumQuestions
	}

	existing, err := r.sets.FindQuestionSetsByCoordinate(ctx, coord)
	if err != nil {
		return nil, false, domain.NewInternalError("Failed to load question sets for coordinate", err)
	}

	if len(existing) > 0 {
		attemptedIDs, err := r.attempts.ListAttemptedSetIDs(ctx, studentID, coord)
		if err != nil {
			return nil, false, domain.NewInternalError("Failed to load attempted set ids", err)
		}
		attempted := make(map[string]struct{}, len(attemptedIDs))
		for _, id := range attemptedIDs {
			attempted[id] = struct{}{}
		}

		var unattempted []*domain.QuestionSet
		for _, set := range existing {
			if _, ok := attempted[set.ID]; !ok {
				unattempted = append(unattempted, set)
			}
		}
		if len(unattempted) > 0 {
			// Uniform pick so interchangeable sets rotate instead of the
			// oldest or newest always winning.
			set := unattempted[r.pick(len(unattempted))]
			logger.Get().Info("Reusing question set",
				zap.String("setID", set.ID),
				zap.String("studentID", studentID),
				zap.String("subject", coord.Subject),
				zap.String("topic", coord.Topic))
			return set, false, nil
		}
	}

	// All persisted sets exhausted for this student (or none exist).
	result, err, _ := r.sfGroup.Do(coordinateKey(coord), func() (interface{}, error) {
		set, err := r.generate(ctx, studentID, coord, numQuestions)
		if err != nil {
			return nil, err
		}
		return &resolvedSet{set: set, isNew: true}, nil
	})
	if err != nil {
		return nil, false, err
	}
	resolved := result.(*resolvedSet)
	return resolved.set, resolved.isNew, nil
}

func (r *QuestionSetResolver) generate(ctx context.Context, studentID string, coord domain.CurriculumCoordinate, numQuestions int) (*domain.QuestionSet, error) {
	chapterText, err := r.chapters.GetChapterText(ctx, coord.ClassNumber, coord.Subject, coord.Chapter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load chapter text", err)
	}
	if chapterText == "" {
		return nil, domain.NewContentUnavailableError(coord)
	}

	hints := domain.GenerationHints{
		Subject:    coord.Subject,
		Chapter:    coord.Chapter,
		Topic:      coord.Topic,
		Difficulty: coord.Difficulty,
	}
	questions, err := r.generator.GenerateQuestions(ctx, chapterText, hints, numQuestions)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	if len(questions) == 0 {
		// A set with zero questions is never persisted.
		return nil, domain.NewGenerationFailedError(fmt.Errorf("generator returned no questions"))
	}

	set := &domain.QuestionSet{
		ID:              util.NewULID(),
		Coordinate:      coord,
		Questions:       questions,
		DifficultyLevel: domain.DifficultyLevelFromScores(questions),
		CreatedBy:       studentID,
		CreatedAt:       time.Now(),
	}
	if err := r.sets.SaveQuestionSet(ctx, set); err != nil {
		return nil, domain.NewInternalError("Failed to persist generated question set", err)
	}

	logger.Get().Info("Generated new question set",
		zap.String("setID", set.ID),
		zap.String("studentID", studentID),
		zap.String("subject", coord.Subject),
		zap.String("topic", coord.Topic),
		zap.Int("questions", len(questions)),
		zap.Int("difficultyLevel", set.DifficultyLevel))
	return set, nil
}

func coordinateKey(coord domain.CurriculumCoordinate) string {
	difficulty := coord.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s", coord.ClassNumber, coord.Subject, coord.Chapter, coord.Topic, difficulty)
}
