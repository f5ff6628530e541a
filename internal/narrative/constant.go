package narrative

import "time"

const (
	// NoActivitySummary is returned for tasks with no recent comments.
	NoActivitySummary = "No changes reported over the last 7 days."

	// SummaryFailurePrefix prefixes the degraded per-task summary when the
	// model call fails; the error text is appended.
	SummaryFailurePrefix = "Failed to generate summary: "

	// SynthesisFailurePrefix prefixes the degraded category summary.
	SynthesisFailurePrefix = "Final synthesis failed: "

	// themeTaskLimit caps how many tasks are shown to the theme detector.
	themeTaskLimit = 15

	// keywordLimit caps the extracted TF-IDF keyphrases.
	keywordLimit = 8

	// Summary memoization: enrichment cycles repeat every few minutes and
	// most tasks' comment sets do not change between cycles.
	summaryCacheSize = 4096
	summaryCacheTTL  = time.Hour
)

// defaultThemes is used when theme detection fails mid-call.
var defaultThemes = []string{"Core Infrastructure", "Functional Updates"}

// offlineThemes is used when no model credential is configured at all.
var offlineThemes = []string{"General Development"}

// stopWords excluded from keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "is": true, "of": true, "to": true,
	"in": true, "a": true, "with": true, "for": true, "on": true,
	"was": true, "not": true, "tasks": true, "task": true,
}
