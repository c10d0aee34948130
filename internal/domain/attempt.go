package domain

import (
	"fmt"
	"time"
)

// QuestionAnswer records one graded answer within an attempt.
type QuestionAnswer struct {
	QuestionID     string
	SelectedOption int
	IsCorrect      bool
}

// Attempt is one student's graded submission against one question set.
// Attempts are append-only: created exactly once per submission, never
// mutated afterwards.
type Attempt struct {
	ID              string
	StudentID       string
	SetID           string
	Coordinate      CurriculumCoordinate
	Answers         []QuestionAnswer
	CorrectCount    int
	IncorrectCount  int
	TotalQuestions  int
	ScorePercentage float64
	Features        FeatureVector
	SubmittedAt     time.Time
}

// Validate checks the attempt's internal count invariant. A violation is a
// programmer error, not user input.
func (a *Attempt) Validate() error {
	if a.StudentID == "" {
		return NewValidationError("student ID is required")
	}
	if a.SetID == "" {
		return NewValidationError("set ID is required")
	}
	if a.CorrectCount+a.IncorrectCount != a.TotalQuestions {
		return NewInternalError(
			fmt.Sprintf("attempt count invariant violated: %d correct + %d incorrect != %d total",
				a.CorrectCount, a.IncorrectCount, a.TotalQuestions), nil)
	}
	if len(a.Answers) != a.TotalQuestions {
		return NewInternalError(
			fmt.Sprintf("attempt has %d answers for %d questions", len(a.Answers), a.TotalQuestions), nil)
	}
	return nil
}
