package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"learnloop/internal/domain"
	"learnloop/internal/logger"
	"learnloop/internal/util"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const questionPromptTemplate = `You are an expert question setter for school students. Using ONLY the chapter text below, create %d multiple-choice questions on the topic "%s" (subject: %s, chapter: %s%s).

For each question provide a JSON object with:
1. "prompt": the question text (math markup allowed).
2. "options": an array of exactly 4 answer options.
3. "correct_option_index": the index (0-3) of the correct option.
4. "skill_tags": an array of 1-3 skill names such as "reasoning", "numerical", "memorization", "language".
5. "features": an object {"memorization", "reasoning", "numerical", "language"} with each value in [0,1] rating the cognitive demand.
6. "difficulty_score": a value in [0,1].

Respond with ONLY a single JSON array of %d such objects.

Chapter text:
%s`

// OllamaQuestionGenerator implements domain.QuestionGenerator against an
// ollama-served model via langchaingo.
type OllamaQuestionGenerator struct {
	serverURL string
	model     string
	timeout   time.Duration
}

// NewOllamaQuestionGenerator creates a new instance of OllamaQuestionGenerator.
func NewOllamaQuestionGenerator(serverURL, model string, timeout time.Duration) (domain.QuestionGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("LLM server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}
	return &OllamaQuestionGenerator{
		serverURL: serverURL,
		model:     model,
		timeout:   timeout,
	}, nil
}

// GenerateQuestions implements domain.QuestionGenerator.
func (g *OllamaQuestionGenerator) GenerateQuestions(ctx context.Context, chapterText string, hints domain.GenerationHints, count int) ([]domain.Question, error) {
	l := logger.Get()

	difficultyHint := ""
	if hints.Difficulty != "" {
		difficultyHint = fmt.Sprintf(", difficulty: %s", hints.Difficulty)
	}
	prompt := fmt.Sprintf(questionPromptTemplate,
		count, hints.Topic, hints.Subject, hints.Chapter, difficultyHint, count, chapterText)

	response, err := g.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseGeneratedQuestions(response)
	if err != nil {
		l.Error("Failed to parse generated questions",
			zap.Error(err),
			zap.String("topic", hints.Topic))
		return nil, err
	}

	l.Info("Generated questions",
		zap.Int("requested", count),
		zap.Int("usable", len(questions)),
		zap.String("topic", hints.Topic))
	return questions, nil
}

func (g *OllamaQuestionGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	httpClient := &http.Client{
		Timeout: g.timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(g.serverURL),
		ollama.WithModel(g.model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create LLM client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llm.Call(ctx, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

type generatedQuestion struct {
	Prompt             string               `json:"prompt"`
	Options            []string             `json:"options"`
	CorrectOptionIndex int                  `json:"correct_option_index"`
	SkillTags          []string             `json:"skill_tags"`
	Features           domain.FeatureVector `json:"features"`
	DifficultyScore    float64              `json:"difficulty_score"`
}

// parseGeneratedQuestions extracts the JSON array from a raw model response
// and converts valid entries into domain questions. Entries that fail
// validation are skipped rather than failing the whole batch.
func parseGeneratedQuestions(response string) ([]domain.Question, error) {
	responseStr := strings.TrimSpace(response)
	if thinkStart := strings.Index(responseStr, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(responseStr, "</think>"); thinkEnd != -1 {
			responseStr = responseStr[thinkEnd+8:]
		}
	}
	responseStr = strings.TrimSpace(responseStr)
	responseStr = strings.TrimPrefix(responseStr, "```json")
	responseStr = strings.TrimPrefix(responseStr, "```")
	responseStr = strings.TrimSuffix(responseStr, "```")
	responseStr = strings.TrimSpace(responseStr)

	var raw []generatedQuestion
	if err := json.Unmarshal([]byte(responseStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as question array: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for _, gq := range raw {
		q := domain.Question{
			ID:              util.NewULID(),
			Prompt:          gq.Prompt,
			Options:         gq.Options,
			CorrectOption:   gq.CorrectOptionIndex,
			SkillTags:       gq.SkillTags,
			Features:        clampFeatures(gq.Features),
			DifficultyScore: clamp01(gq.DifficultyScore),
		}
		if err := q.Validate(); err != nil {
			logger.Get().Warn("Skipping invalid generated question",
				zap.Error(err),
				zap.String("prompt", gq.Prompt))
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFeatures(f domain.FeatureVector) domain.FeatureVector {
	return domain.FeatureVector{
		Memorization: clamp01(f.Memorization),
		Reasoning:    clamp01(f.Reasoning),
		Numerical:    clamp01(f.Numerical),
		Language:     clamp01(f.Language),
	}
}

var _ domain.QuestionGenerator = (*OllamaQuestionGenerator)(nil)
