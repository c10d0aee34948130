package domain

import "context"

// ChapterTextProvider supplies the raw chapter text for a teachable unit.
// Syllabus ingestion and parsing live outside this engine; the provider is
// consumed as an opaque collaborator.
type ChapterTextProvider interface {
	// GetChapterText returns the chapter's text. An empty result means no
	// matching syllabus content exists.
	GetChapterText(ctx context.Context, classNumber int, subject, chapter string) (string, error)
}

// GenerationHints carries the curriculum context forwarded to the question
// generation collaborator.
type GenerationHints struct {
	Subject    string
	Chapter    string
	Topic      string
	Difficulty string
}

// QuestionGenerator defines the interface for the LLM-backed question
// generation collaborator. Implementations must return between 1 and count
// questions; fewer than requested is tolerated, zero is a failure.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, chapterText string, hints GenerationHints, count int) ([]Question, error)
}
