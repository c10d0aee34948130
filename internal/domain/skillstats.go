package domain

import "time"

// MasteryLevel is the four-tier label derived from a skill score.
type MasteryLevel string

const (
	MasteryNovice    MasteryLevel = "novice"
	MasteryLearner   MasteryLevel = "learner"
	MasteryCompetent MasteryLevel = "competent"
	MasteryExpert    MasteryLevel = "expert"
)

// Mastery thresholds, applied identically wherever a score becomes a label.
const (
	learnerThreshold   = 0.4
	competentThreshold = 0.6
	expertThreshold    = 0.8
)

// MasteryLevelForScore maps a skill score in [0,1] to its mastery label.
func MasteryLevelForScore(score float64) MasteryLevel {
	switch {
	case score >= expertThreshold:
		return MasteryExpert
	case score >= competentThreshold:
		return MasteryCompetent
	case score >= learnerThreshold:
		return MasteryLearner
	default:
		return MasteryNovice
	}
}

// Rank orders mastery levels so callers can compare them (novice < learner <
// competent < expert).
func (m MasteryLevel) Rank() int {
	switch m {
	case MasteryLearner:
		return 1
	case MasteryCompetent:
		return 2
	case MasteryExpert:
		return 3
	default:
		return 0
	}
}

// SkillScore is the per-skill signal carried by an attempt or accumulated on
// a student's stats record.
type SkillScore struct {
	Skill             string       `json:"skill"`
	Score             float64      `json:"score"`
	MasteryLevel      MasteryLevel `json:"mastery_level"`
	QuestionsAnswered int          `json:"questions_answered"`
}

// SkillStats is the running statistics record for one (student, subject)
// pair. It is the only entity updated via read-modify-write; callers must
// serialize concurrent merges for the same student.
type SkillStats struct {
	ID                     string
	StudentID              string
	Subject                string
	TotalQuestionsAnswered int
	CorrectCount           int
	IncorrectCount         int
	AccuracyPercentage     float64
	Skills                 map[string]SkillScore
	Features               FeatureVector
	LastAttemptAt          time.Time
	UpdatedAt              time.Time
}

// NewSkillStatsFromAttempt initializes a stats record from a student's first
// attempt for the subject. Weights are moot on the first write.
func NewSkillStatsFromAttempt(attempt *Attempt, skillScores []SkillScore) *SkillStats {
	skills := make(map[string]SkillScore, len(skillScores))
	for _, sc := range skillScores {
		sc.MasteryLevel = MasteryLevelForScore(sc.Score)
		skills[sc.Skill] = sc
	}
	return &SkillStats{
		StudentID:              attempt.StudentID,
		Subject:                attempt.Coordinate.Subject,
		TotalQuestionsAnswered: attempt.TotalQuestions,
		CorrectCount:           attempt.CorrectCount,
		IncorrectCount:         attempt.IncorrectCount,
		AccuracyPercentage:     attempt.ScorePercentage,
		Skills:                 skills,
		Features:               attempt.Features,
		LastAttemptAt:          attempt.SubmittedAt,
		UpdatedAt:              attempt.SubmittedAt,
	}
}

// Merge folds a graded attempt into the running record using question counts
// as weights. Attempts vary in question count, so count weighting keeps the
// running mean exact without replaying attempt history.
func (s *SkillStats) Merge(attempt *Attempt, skillScores []SkillScore) {
	oldWeight := float64(s.TotalQuestionsAnswered)
	newWeight := float64(attempt.TotalQuestions)

	s.TotalQuestionsAnswered += attempt.TotalQuestions
	s.CorrectCount += attempt.CorrectCount
	s.IncorrectCount += attempt.IncorrectCount
	if s.TotalQuestionsAnswered > 0 {
		s.AccuracyPercentage = 100 * float64(s.CorrectCount) / float64(s.TotalQuestionsAnswered)
	}

	if s.Skills == nil {
		s.Skills = make(map[string]SkillScore, len(skillScores))
	}
	for _, sc := range skillScores {
		existing, ok := s.Skills[sc.Skill]
		if !ok {
			sc.MasteryLevel = MasteryLevelForScore(sc.Score)
			s.Skills[sc.Skill] = sc
			continue
		}
		totalAnswered := existing.QuestionsAnswered + sc.QuestionsAnswered
		if totalAnswered > 0 {
			existing.Score = (existing.Score*float64(existing.QuestionsAnswered) +
				sc.Score*float64(sc.QuestionsAnswered)) / float64(totalAnswered)
		}
		existing.QuestionsAnswered = totalAnswered
		existing.MasteryLevel = MasteryLevelForScore(existing.Score)
		s.Skills[sc.Skill] = existing
	}

	// Feature averages weight by total question counts, not correct counts.
	s.Features = WeightedMeanFeatures(s.Features, oldWeight, attempt.Features, newWeight)
	s.LastAttemptAt = attempt.SubmittedAt
	s.UpdatedAt = attempt.SubmittedAt
}

// ClassSkillStats is the cohort-level aggregate over many students' records
// for one subject: unweighted means, a coarser statistic than the per-student
// merge.
type ClassSkillStats struct {
	Subject                string
	StudentCount           int
	MeanAccuracyPercentage float64
	SkillMeans             map[string]SkillScore
}

// AggregateClassStats computes the unweighted mean of accuracy and of each
// per-skill score across students. Skills are averaged over the students that
// carry them, not over the whole cohort.
func AggregateClassStats(subject string, stats []*SkillStats) *ClassSkillStats {
	agg := &ClassSkillStats{
		Subject:    subject,
		SkillMeans: make(map[string]SkillScore),
	}
	if len(stats) == 0 {
		return agg
	}

	var accuracySum float64
	skillSums := make(map[string]float64)
	skillCounts := make(map[string]int)
	for _, st := range stats {
		if st == nil {
			continue
		}
		agg.StudentCount++
		accuracySum += st.AccuracyPercentage
		for name, sc := range st.Skills {
			skillSums[name] += sc.Score
			skillCounts[name]++
		}
	}
	if agg.StudentCount == 0 {
		return agg
	}

	agg.MeanAccuracyPercentage = accuracySum / float64(agg.StudentCount)
	for name, sum := range skillSums {
		mean := sum / float64(skillCounts[name])
		agg.SkillMeans[name] = SkillScore{
			Skill:        name,
			Score:        mean,
			MasteryLevel: MasteryLevelForScore(mean),
		}
	}
	return agg
}
