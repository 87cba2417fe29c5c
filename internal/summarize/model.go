package summarize

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyInput means the input text was empty after trimming.
var ErrEmptyInput = errors.New("input text is empty")

// Summarizer produces a summary for a rendered prompt. Declared on the
// consumer side so the orchestrator does not depend on a concrete upstream.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// GenerateRequest carries the user's text and summary options.
// Text may be empty, in which case the session's stored input text is used.
type GenerateRequest struct {
	Text      string   `json:"text"`
	Length    Length   `json:"length" validate:"required,oneof=very_short short balanced detailed very_detailed"`
	MaxTokens int      `json:"max_tokens" validate:"required,min=50,max=1000"`
	Language  Language `json:"language" validate:"required,oneof=English Hindi"`
	Format    Format   `json:"format" validate:"required,oneof=paragraph bullet_points"`
}

// SummaryResult is the outcome handed to the display collaborator.
type SummaryResult struct {
	Summary          string  `json:"summary"`
	OriginalWords    int     `json:"original_words"`
	SummaryWords     int     `json:"summary_words"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReductionPercent is the percentage decrease from original to summary word
// count, zero when the original is empty.
func ReductionPercent(original, summary int) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-summary) / float64(original) * 100
}
