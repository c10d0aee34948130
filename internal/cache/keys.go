package cache

import "strings"

const keyPrefix = "learnloop"

// QuestionSetKey is the cache key for a serialized question set.
func QuestionSetKey(setID string) string {
	return join("quiz", "set", setID)
}

// StudentStatsKey is the cache key for a student's per-subject stats response.
// It is invalidated whenever a new attempt for that subject is merged.
func StudentStatsKey(studentID, subject string) string {
	return join("stats", "student", studentID, subject)
}

func join(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}
