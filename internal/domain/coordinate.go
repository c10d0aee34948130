package domain

import "strings"

// Difficulty labels a curriculum coordinate or question set. An empty label
// means the requester did not care; it matches unlabeled and medium sets.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// CurriculumCoordinate identifies a teachable unit: class, subject, chapter,
// topic and an optional difficulty label.
type CurriculumCoordinate struct {
	ClassNumber int
	Subject     string
	Chapter     string
	Topic       string
	Difficulty  string
}

// Normalized returns a copy with the subject case-folded and all string
// fields trimmed, so that coordinates compare and query consistently.
func (c CurriculumCoordinate) Normalized() CurriculumCoordinate {
	return CurriculumCoordinate{
		ClassNumber: c.ClassNumber,
		Subject:     strings.ToLower(strings.TrimSpace(c.Subject)),
		Chapter:     strings.TrimSpace(c.Chapter),
		Topic:       strings.TrimSpace(c.Topic),
		Difficulty:  strings.ToLower(strings.TrimSpace(c.Difficulty)),
	}
}

// Validate validates the coordinate
func (c CurriculumCoordinate) Validate() error {
	if c.ClassNumber <= 0 {
		return NewValidationError("class number is required")
	}
	if strings.TrimSpace(c.Subject) == "" {
		return NewValidationError("subject is required")
	}
	if strings.TrimSpace(c.Chapter) == "" {
		return NewValidationError("chapter is required")
	}
	if strings.TrimSpace(c.Topic) == "" {
		return NewValidationError("topic is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Difficulty)) {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return NewValidationError("difficulty must be one of easy, medium, hard")
	}
	return nil
}
