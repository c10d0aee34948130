package domain

import (
	"math"
	"time"
)

// OptionsPerQuestion is the fixed number of answer options on every question.
const OptionsPerQuestion = 4

// UnansweredOption is the sentinel selected-option index recorded when a
// student submitted no answer for a question.
const UnansweredOption = -1

// FeatureVector holds the four cognitive-demand intensities attached to a
// question, each in [0,1].
type FeatureVector struct {
	Memorization float64 `json:"memorization"`
	Reasoning    float64 `json:"reasoning"`
	Numerical    float64 `json:"numerical"`
	Language     float64 `json:"language"`
}

// Add returns the component-wise sum of two vectors.
func (v FeatureVector) Add(o FeatureVector) FeatureVector {
	return FeatureVector{
		Memorization: v.Memorization + o.Memorization,
		Reasoning:    v.Reasoning + o.Reasoning,
		Numerical:    v.Numerical + o.Numerical,
		Language:     v.Language + o.Language,
	}
}

// Scale returns the vector multiplied by f.
func (v FeatureVector) Scale(f float64) FeatureVector {
	return FeatureVector{
		Memorization: v.Memorization * f,
		Reasoning:    v.Reasoning * f,
		Numerical:    v.Numerical * f,
		Language:     v.Language * f,
	}
}

// WeightedMeanFeatures merges two vectors by the given weights. Zero total
// weight yields the zero vector.
func WeightedMeanFeatures(a FeatureVector, aWeight float64, b FeatureVector, bWeight float64) FeatureVector {
	total := aWeight + bWeight
	if total == 0 {
		return FeatureVector{}
	}
	return a.Scale(aWeight).Add(b.Scale(bWeight)).Scale(1 / total)
}

// Question represents one generated multiple-choice question.
type Question struct {
	ID              string
	Prompt          string
	Options         []string
	CorrectOption   int
	SkillTags       []string
	Features        FeatureVector
	DifficultyScore float64
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return NewValidationError("question prompt is required")
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewValidationError("question must have exactly 4 options")
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return NewValidationError("correct option index must reference an existing option")
	}
	if len(q.SkillTags) == 0 {
		return NewValidationError("at least one skill tag is required")
	}
	if q.DifficultyScore < 0 || q.DifficultyScore > 1 {
		return NewValidationError("difficulty score must be in [0,1]")
	}
	return nil
}

// QuestionSet is an immutable, shareable batch of generated questions for one
// curriculum coordinate. CreatedBy records which student's request triggered
// generation; it is informational only and does not scope visibility.
type QuestionSet struct {
	ID              string
	Coordinate      CurriculumCoordinate
	Questions       []Question
	DifficultyLevel int
	CreatedBy       string
	CreatedAt       time.Time
}

// Validate validates the question set
func (s *QuestionSet) Validate() error {
	if err := s.Coordinate.Validate(); err != nil {
		return err
	}
	if len(s.Questions) == 0 {
		return NewValidationError("question set must contain at least one question")
	}
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DifficultyLevelFromScores maps the mean per-question difficulty score (0-1)
// to the stored 1-10 level: round(mean*10) clamped to [1,10].
func DifficultyLevelFromScores(questions []Question) int {
	if len(questions) == 0 {
		return 1
	}
	var sum float64
	for i := range questions {
		sum += questions[i].DifficultyScore
	}
	level := int(math.Round(sum / float64(len(questions)) * 10))
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}
	return level
}
