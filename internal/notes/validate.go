package notes

import (
	"fmt"
	"strings"
)

const (
	MinMoodScore = 1
	MaxMoodScore = 10
)

// Validate checks a decoded note against the schema. The first violation is
// returned as a *ValidationError.
func (n StructuredNote) Validate() error {
	if !n.Classification.Valid() {
		return &ValidationError{
			Field:  "classification",
			Reason: fmt.Sprintf("must be one of Task, Idea, Journal, Resource, Memo (got %q)", n.Classification),
		}
	}
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if n.MoodScore < MinMoodScore || n.MoodScore > MaxMoodScore {
		return &ValidationError{
			Field:  "mood_score",
			Reason: fmt.Sprintf("must be between %d and %d (got %d)", MinMoodScore, MaxMoodScore, n.MoodScore),
		}
	}
	if strings.TrimSpace(n.AIComment) == "" {
		return &ValidationError{Field: "ai_comment", Reason: "must not be empty"}
	}
	return nil
}
