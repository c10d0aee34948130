package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"learnloop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// sqlxSyllabusRepository implements domain.ChapterTextProvider over the
// syllabus_chapters table populated by the (external) ingestion pipeline.
type sqlxSyllabusRepository struct {
	db *sqlx.DB
}

// NewSQLXSyllabusRepository creates a new instance of sqlxSyllabusRepository.
func NewSQLXSyllabusRepository(db *sqlx.DB) domain.ChapterTextProvider {
	return &sqlxSyllabusRepository{db: db}
}

// GetChapterText returns the chapter's text, or an empty string when no
// matching syllabus content exists. The caller decides how to surface the
// empty case.
func (r *sqlxSyllabusRepository) GetChapterText(ctx context.Context, classNumber int, subject, chapter string) (string, error) {
	query := `SELECT content FROM syllabus_chapters
	          WHERE class_number = :1 AND subject = :2 AND chapter = :3`

	var content string
	row := r.db.QueryRowContext(ctx, query, classNumber, strings.ToLower(strings.TrimSpace(subject)), strings.TrimSpace(chapter))
	if err := row.Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get chapter text: %w", err)
	}
	return content, nil
}
