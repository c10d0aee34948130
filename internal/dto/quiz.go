package dto

import "learnloop/internal/domain"

// GenerateQuizRequest is the request body for generating or reusing a quiz.
// @Description Request body for serving a quiz for a curriculum coordinate
type GenerateQuizRequest struct {
	SchoolID     string `json:"school_id"`
	ClassNumber  int    `json:"class_number"`
	Subject      string `json:"subject"`
	Chapter      string `json:"chapter"`
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

// QuestionResponse is a question as served to a student: no answer key.
type QuestionResponse struct {
	ID         string               `json:"id"`
	Prompt     string               `json:"prompt"`
	Options    []string             `json:"options"`
	SkillTags  []string             `json:"skill_tags"`
	Features   domain.FeatureVector `json:"features"`
	Difficulty float64              `json:"difficulty_score"`
}

// GenerateQuizResponse is the served quiz.
type GenerateQuizResponse struct {
	SetID           string             `json:"set_id"`
	Questions       []QuestionResponse `json:"questions"`
	DifficultyLevel int                `json:"difficulty_level"`
	IsNewSet        bool               `json:"is_new_set"`
	Message         string             `json:"message"`
}

// SubmittedAnswer is one answer in a quiz submission.
type SubmittedAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option_index"`
}

// SubmitQuizRequest is the request body for submitting quiz answers.
// @Description Request body for grading a quiz submission
type SubmitQuizRequest struct {
	SchoolID string            `json:"school_id"`
	SetID    string            `json:"set_id"`
	Answers  []SubmittedAnswer `json:"answers"`
}

// SkillScoreResponse is the per-skill signal returned after grading.
type SkillScoreResponse struct {
	Skill             string  `json:"skill"`
	Score             float64 `json:"score"`
	MasteryLevel      string  `json:"mastery_level"`
	QuestionsAnswered int     `json:"questions_answered"`
}

// SubmitQuizResponse is the graded result of one submission.
type SubmitQuizResponse struct {
	AttemptID          string               `json:"attempt_id"`
	ScoreTotal         int                  `json:"score_total"`
	CorrectCount       int                  `json:"correct_count"`
	IncorrectCount     int                  `json:"incorrect_count"`
	TotalQuestions     int                  `json:"total_questions"`
	ScorePercentage    float64              `json:"score_percentage"`
	FeaturesAggregated domain.FeatureVector `json:"features_aggregated"`
	SkillBreakdown     []SkillScoreResponse `json:"skill_breakdown"`
	Message            string               `json:"message"`
}

// AttemptSummary is one row of a student's attempt history.
type AttemptSummary struct {
	AttemptID       string  `json:"attempt_id"`
	SetID           string  `json:"set_id"`
	ClassNumber     int     `json:"class_number"`
	Subject         string  `json:"subject"`
	Chapter         string  `json:"chapter"`
	Topic           string  `json:"topic"`
	CorrectCount    int     `json:"correct_count"`
	TotalQuestions  int     `json:"total_questions"`
	ScorePercentage float64 `json:"score_percentage"`
	SubmittedAt     string  `json:"submitted_at"`
}

// AttemptListResponse is a page of attempt history.
type AttemptListResponse struct {
	Attempts []AttemptSummary `json:"attempts"`
	Total    int              `json:"total"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
