package dto

import "learnloop/internal/domain"

// SkillStatsResponse is the merged running record for one (student, subject).
type SkillStatsResponse struct {
	StudentID              string               `json:"student_id"`
	Subject                string               `json:"subject"`
	TotalQuestionsAnswered int                  `json:"total_questions_answered"`
	CorrectCount           int                  `json:"correct_count"`
	IncorrectCount         int                  `json:"incorrect_count"`
	AccuracyPercentage     float64              `json:"accuracy_percentage"`
	Skills                 []SkillScoreResponse `json:"skills"`
	FeaturesAverage        domain.FeatureVector `json:"features_average"`
	LastAttemptAt          string               `json:"last_attempt_at"`
}

// ClassStatsRequest asks for the cohort aggregate over a roster. Roster
// resolution (which students belong to a class) is owned by the caller.
type ClassStatsRequest struct {
	SchoolID   string   `json:"school_id"`
	Subject    string   `json:"subject"`
	StudentIDs []string `json:"student_ids"`
}

// ClassStatsResponse is the unweighted cohort aggregate.
type ClassStatsResponse struct {
	Subject                string               `json:"subject"`
	StudentCount           int                  `json:"student_count"`
	MeanAccuracyPercentage float64              `json:"mean_accuracy_percentage"`
	SkillMeans             []SkillScoreResponse `json:"skill_means"`
}
