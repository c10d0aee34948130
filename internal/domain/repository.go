package domain

import "context"

// QuestionSetRepository defines the interface for question set persistence.
// Sets are write-once-read-many; there is no update operation.
type QuestionSetRepository interface {
	// SaveQuestionSet persists a new set together with its questions.
	SaveQuestionSet(ctx context.Context, set *QuestionSet) error

	// GetQuestionSetByID retrieves a set with its questions, or nil if absent.
	GetQuestionSetByID(ctx context.Context, setID string) (*QuestionSet, error)

	// FindQuestionSetsByCoordinate returns all sets matching the coordinate.
	// When the coordinate carries no difficulty label, sets with no label or a
	// medium label match, treated as equivalent.
	FindQuestionSetsByCoordinate(ctx context.Context, coord CurriculumCoordinate) ([]*QuestionSet, error)
}

// AttemptRepository defines the interface for graded attempt persistence.
// Attempts are append-only.
type AttemptRepository interface {
	// SaveAttempt inserts a new attempt with its per-question answers.
	SaveAttempt(ctx context.Context, attempt *Attempt) error

	// ListAttemptedSetIDs returns the ids of sets the student has already
	// attempted for the exact coordinate.
	ListAttemptedSetIDs(ctx context.Context, studentID string, coord CurriculumCoordinate) ([]string, error)

	// ListAttemptsByStudent returns a page of the student's attempts for a
	// subject, newest first, along with the total count.
	ListAttemptsByStudent(ctx context.Context, studentID, subject string, limit, offset int) ([]Attempt, int, error)
}

// SkillStatsRepository defines the interface for the running per-student
// statistics records.
type SkillStatsRepository interface {
	// GetByStudentAndSubject returns the record for the pair, or nil if the
	// student has no attempts for the subject yet.
	GetByStudentAndSubject(ctx context.Context, studentID, subject string) (*SkillStats, error)

	// Upsert writes the record, inserting on first attempt and replacing the
	// existing row afterwards in a single statement.
	Upsert(ctx context.Context, stats *SkillStats) error
}
