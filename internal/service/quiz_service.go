package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"learnloop/internal/cache"
	"learnloop/internal/config"
	"learnloop/internal/domain"
	"learnloop/internal/dto"
	"learnloop/internal/logger"

	"go.uber.org/zap"
)

// QuizService serves quizzes and grades submissions.
type QuizService interface {
	GenerateQuiz(ctx context.Context, studentID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitQuiz(ctx context.Context, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

type quizService struct {
	resolver   *QuestionSetResolver
	grader     *Grader
	aggregator *SkillAggregator
	sets       domain.QuestionSetRepository
	cache      domain.Cache
	quizCfg    config.QuizConfig
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	resolver *QuestionSetResolver,
	grader *Grader,
	aggregator *SkillAggregator,
	sets domain.QuestionSetRepository,
	cacheAdapter domain.Cache,
	quizCfg config.QuizConfig,
) QuizService {
	return &quizService{
		resolver:   resolver,
		grader:     grader,
		aggregator: aggregator,
		sets:       sets,
		cache:      cacheAdapter,
		quizCfg:    quizCfg,
	}
}

// GenerateQuiz resolves a question set for the student's coordinate and
// returns it without the answer key.
func (s *quizService) GenerateQuiz(ctx context.Context, studentID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("request body is required")
	}
	coord := domain.CurriculumCoordinate{
		ClassNumber: req.ClassNumber,
		Subject:     req.Subject,
		Chapter:     req.Chapter,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
	}

	set, isNew, err := s.resolver.Resolve(ctx, studentID, coord, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, set)

	questions := make([]dto.QuestionResponse, 0, len(set.Questions))
	for _, q := range set.Questions {
		questions = append(questions, dto.QuestionResponse{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Options:    q.Options,
			SkillTags:  q.SkillTags,
			Features:   q.Features,
			Difficulty: q.DifficultyScore,
		})
	}

	message := "Serving an existing quiz."
	if isNew {
		message = "Generated a new quiz."
	}
	return &dto.GenerateQuizResponse{
		SetID:           set.ID,
		Questions:       questions,
		DifficultyLevel: set.DifficultyLevel,
		IsNewSet:        isNew,
		Message:         message,
	}, nil
}

// SubmitQuiz grades the submission against its set, folds the result into the
// student's skill stats and returns the graded breakdown.
func (s *quizService) SubmitQuiz(ctx context.Context, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if req == nil || strings.TrimSpace(req.SetID) == "" {
		return nil, domain.NewValidationError("set_id is required")
	}
	if len(req.Answers) == 0 {
		return nil, domain.NewValidationError("at least one answer is required")
	}

	set, err := s.loadSet(ctx, req.SetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, domain.NewQuestionSetNotFoundError(req.SetID)
	}

	// Last answer wins on duplicate question ids.
	answers := make(map[string]int, len(req.Answers))
	for _, ans := range req.Answers {
		answers[ans.QuestionID] = ans.SelectedOption
	}

	attempt, skillScores, err := s.grader.Grade(ctx, studentID, set, answers)
	if err != nil {
		return nil, err
	}

	if _, err := s.aggregator.MergeAttempt(ctx, attempt, skillScores); err != nil {
		return nil, err
	}
	s.invalidateStatsCache(ctx, studentID, set.Coordinate.Subject)

	breakdown := make([]dto.SkillScoreResponse, 0, len(skillScores))
	for _, sc := range skillScores {
		breakdown = append(breakdown, dto.SkillScoreResponse{
			Skill:             sc.Skill,
			Score:             sc.Score,
			MasteryLevel:      string(sc.MasteryLevel),
			QuestionsAnswered: sc.QuestionsAnswered,
		})
	}

	return &dto.SubmitQuizResponse{
		AttemptID:          attempt.ID,
		ScoreTotal:         attempt.CorrectCount,
		CorrectCount:       attempt.CorrectCount,
		IncorrectCount:     attempt.IncorrectCount,
		TotalQuestions:     attempt.TotalQuestions,
		ScorePercentage:    attempt.ScorePercentage,
		FeaturesAggregated: attempt.Features,
		SkillBreakdown:     breakdown,
		Message:            fmt.Sprintf("Scored %d out of %d.", attempt.CorrectCount, attempt.TotalQuestions),
	}, nil
}

// loadSet tries the cache first and falls back to the repository. Cache
// failures degrade to a repository read.
func (s *quizService) loadSet(ctx context.Context, setID string) (*domain.QuestionSet, error) {
	key := cache.QuestionSetKey(setID)
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var set domain.QuestionSet
		if jsonErr := json.Unmarshal([]byte(cached), &set); jsonErr == nil {
			return &set, nil
		}
		logger.Get().Warn("Failed to unmarshal cached question set, falling back to DB", zap.String("setID", setID))
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Cache get failed for question set", zap.String("setID", setID), zap.Error(err))
	}

	set, err := s.sets.GetQuestionSetByID(ctx, setID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question set", err)
	}
	if set != nil {
		s.cacheSet(ctx, set)
	}
	return set, nil
}

// cacheSet is best effort: a cache failure is logged, never surfaced.
func (s *quizService) cacheSet(ctx context.Context, set *domain.QuestionSet) {
	payload, err := json.Marshal(set)
	if err != nil {
		logger.Get().Warn("Failed to marshal question set for cache", zap.String("setID", set.ID), zap.Error(err))
		return
	}
	key := cache.QuestionSetKey(set.ID)
	if err := s.cache.Set(ctx, key, string(payload), s.quizCfg.SetCacheTTL); err != nil {
		logger.Get().Warn("Failed to cache question set", zap.String("setID", set.ID), zap.Error(err))
	}
}

func (s *quizService) invalidateStatsCache(ctx context.Context, studentID, subject string) {
	key := cache.StudentStatsKey(studentID, subject)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate stats cache",
			zap.String("studentID", studentID), zap.String("subject", subject), zap.Error(err))
	}
}
