package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validQuestion() Question {
	return Question{
		ID:              "q1",
		Prompt:          "What bends light as it passes between media?",
		Options:         []string{"Reflection", "Refraction", "Diffusion", "Absorption"},
		CorrectOption:   1,
		SkillTags:       []string{"optics"},
		Features:        FeatureVector{Memorization: 0.4, Reasoning: 0.6},
		DifficultyScore: 0.5,
	}
}

func TestQuestionValidate(t *testing.T) {
	q := validQuestion()
	assert.NoError(t, q.Validate())

	q = validQuestion()
	q.Prompt = ""
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options = []string{"a", "b", "c"}
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.CorrectOption = 4
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.SkillTags = nil
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.DifficultyScore = 1.2
	assert.Error(t, q.Validate())
}

func TestDifficultyLevelFromScores(t *testing.T) {
	questionsWithScores := func(scores ...float64) []Question {
		qs := make([]Question, len(scores))
		for i, s := range scores {
			qs[i] = validQuestion()
			qs[i].DifficultyScore = s
		}
		return qs
	}

	tests := []struct {
		name     string
		scores   []float64
		expected int
	}{
		{"mid scores", []float64{0.5, 0.5}, 5},
		{"rounds up", []float64{0.55}, 6},
		{"all zero clamps to one", []float64{0.0, 0.0}, 1},
		{"all one clamps to ten", []float64{1.0, 1.0}, 10},
		{"mixed", []float64{0.2, 0.4, 0.9}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DifficultyLevelFromScores(questionsWithScores(tt.scores...)))
		})
	}

	assert.Equal(t, 1, DifficultyLevelFromScores(nil))
}

func TestWeightedMeanFeatures(t *testing.T) {
	a := FeatureVector{Memorization: 0.2, Reasoning: 0.4}
	b := FeatureVector{Memorization: 0.8, Reasoning: 0.6}

	merged := WeightedMeanFeatures(a, 1, b, 1)
	assert.InDelta(t, 0.5, merged.Memorization, 1e-9)
	assert.InDelta(t, 0.5, merged.Reasoning, 1e-9)

	merged = WeightedMeanFeatures(a, 3, b, 1)
	assert.InDelta(t, 0.35, merged.Memorization, 1e-9)

	// Zero total weight yields the zero vector.
	merged = WeightedMeanFeatures(a, 0, b, 0)
	assert.Equal(t, FeatureVector{}, merged)
}

func TestQuestionSetValidate(t *testing.T) {
	set := QuestionSet{
		ID:         "set-1",
		Coordinate: CurriculumCoordinate{ClassNumber: 8, Subject: "science", Chapter: "light", Topic: "refraction"},
		Questions:  []Question{validQuestion()},
	}
	assert.NoError(t, set.Validate())

	set.Questions = nil
	assert.Error(t, set.Validate())
}
