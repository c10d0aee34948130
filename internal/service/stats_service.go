package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"learnloop/internal/cache"
	"learnloop/internal/config"
	"learnloop/internal/domain"
	"learnloop/internal/dto"
	"learnloop/internal/logger"

	"go.uber.org/zap"
)

// StatsService exposes student and class mastery statistics.
type StatsService interface {
	GetStudentStats(ctx context.Context, studentID, subject string) (*dto.SkillStatsResponse, error)
	GetClassStats(ctx context.Context, req *dto.ClassStatsRequest) (*dto.ClassStatsResponse, error)
	GetStudentAttempts(ctx context.Context, studentID, subject string, limit, offset int) (*dto.AttemptListResponse, error)
}

type statsService struct {
	stats      domain.SkillStatsRepository
	attempts   domain.AttemptRepository
	aggregator *SkillAggregator
	cache      domain.Cache
	quizCfg    config.QuizConfig
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	stats domain.SkillStatsRepository,
	attempts domain.AttemptRepository,
	aggregator *SkillAggregator,
	cacheAdapter domain.Cache,
	quizCfg config.QuizConfig,
) StatsService {
	return &statsService{
		stats:      stats,
		attempts:   attempts,
		aggregator: aggregator,
		cache:      cacheAdapter,
		quizCfg:    quizCfg,
	}
}

// GetStudentStats returns the student's running record for a subject, from
// cache when fresh.
func (s *statsService) GetStudentStats(ctx context.Context, studentID, subject string) (*dto.SkillStatsResponse, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return nil, domain.NewValidationError("subject is required")
	}

	key := cache.StudentStatsKey(studentID, subject)
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var resp dto.SkillStatsResponse
		if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
			return &resp, nil
		}
		logger.Get().Warn("Failed to unmarshal cached stats, falling back to DB", zap.String("studentID", studentID))
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Cache get failed for stats", zap.String("studentID", studentID), zap.Error(err))
	}

	stats, err := s.stats.GetByStudentAndSubject(ctx, studentID, subject)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load skill stats", err)
	}
	if stats == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No skill stats for subject %q yet", subject))
	}

	resp := toSkillStatsResponse(stats)
	if payload, jsonErr := json.Marshal(resp); jsonErr == nil {
		if cacheErr := s.cache.Set(ctx, key, string(payload), s.quizCfg.StatsCacheTTL); cacheErr != nil {
			logger.Get().Warn("Failed to cache stats", zap.String("studentID", studentID), zap.Error(cacheErr))
		}
	}
	return resp, nil
}

// GetClassStats aggregates the roster's records for a subject. Rosters come
// from the caller; this service does not know class membership.
func (s *statsService) GetClassStats(ctx context.Context, req *dto.ClassStatsRequest) (*dto.ClassStatsResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("request body is required")
	}
	subject := strings.ToLower(strings.TrimSpace(req.Subject))
	if subject == "" {
		return nil, domain.NewValidationError("subject is required")
	}
	if len(req.StudentIDs) == 0 {
		return nil, domain.NewValidationError("at least one student id is required")
	}

	agg, err := s.aggregator.AggregateClass(ctx, subject, req.StudentIDs)
	if err != nil {
		return nil, err
	}

	means := make([]dto.SkillScoreResponse, 0, len(agg.SkillMeans))
	for _, sc := range agg.SkillMeans {
		means = append(means, dto.SkillScoreResponse{
			Skill:        sc.Skill,
			Score:        sc.Score,
			MasteryLevel: string(sc.MasteryLevel),
		})
	}
	sort.Slice(means, func(i, j int) bool { return means[i].Skill < means[j].Skill })

	return &dto.ClassStatsResponse{
		Subject:                agg.Subject,
		StudentCount:           agg.StudentCount,
		MeanAccuracyPercentage: agg.MeanAccuracyPercentage,
		SkillMeans:             means,
	}, nil
}

// GetStudentAttempts returns a page of the student's attempt history for a
// subject, newest first.
func (s *statsService) GetStudentAttempts(ctx context.Context, studentID, subject string, limit, offset int) (*dto.AttemptListResponse, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return nil, domain.NewValidationError("subject is required")
	}

	attempts, total, err := s.attempts.ListAttemptsByStudent(ctx, studentID, subject, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load attempt history", err)
	}

	summaries := make([]dto.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, dto.AttemptSummary{
			AttemptID:       a.ID,
			SetID:           a.SetID,
			ClassNumber:     a.Coordinate.ClassNumber,
			Subject:         a.Coordinate.Subject,
			Chapter:         a.Coordinate.Chapter,
			Topic:           a.Coordinate.Topic,
			CorrectCount:    a.CorrectCount,
			TotalQuestions:  a.TotalQuestions,
			ScorePercentage: a.ScorePercentage,
			SubmittedAt:     a.SubmittedAt.Format(time.RFC3339),
		})
	}

	return &dto.AttemptListResponse{Attempts: summaries, Total: total}, nil
}

func toSkillStatsResponse(stats *domain.SkillStats) *dto.SkillStatsResponse {
	skills := make([]dto.SkillScoreResponse, 0, len(stats.Skills))
	for _, sc := range stats.Skills {
		skills = append(skills, dto.SkillScoreResponse{
			Skill:             sc.Skill,
			Score:             sc.Score,
			MasteryLevel:      string(sc.MasteryLevel),
			QuestionsAnswered: sc.QuestionsAnswered,
		})
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Skill < skills[j].Skill })

	lastAttempt := ""
	if !stats.LastAttemptAt.IsZero() {
		lastAttempt = stats.LastAttemptAt.Format(time.RFC3339)
	}
	return &dto.SkillStatsResponse{
		StudentID:              stats.StudentID,
		Subject:                stats.Subject,
		TotalQuestionsAnswered: stats.TotalQuestionsAnswered,
		CorrectCount:           stats.CorrectCount,
		IncorrectCount:         stats.IncorrectCount,
		AccuracyPercentage:     stats.AccuracyPercentage,
		Skills:                 skills,
		FeaturesAverage:        stats.Features,
		LastAttemptAt:          lastAttempt,
	}
}
