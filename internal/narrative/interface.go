package narrative

import (
	"context"

	"engineering-sync/internal/model"
)

// Synthesizer produces the generated prose attached to tasks and categories.
// Implementations never return errors: every failure mode degrades to a
// fixed fallback string.
type Synthesizer interface {
	// SummarizeComments turns a chronological comment list into a short
	// narrative. Empty input yields NoActivitySummary.
	SummarizeComments(ctx context.Context, comments []string) string

	// CategorySummary runs the multi-stage pipeline over an already-ranked
	// task list and returns the category-level executive paragraph. Empty
	// input yields an empty string.
	CategorySummary(ctx context.Context, categoryName string, tasks []model.Task) string
}
