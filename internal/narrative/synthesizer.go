package narrative

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"engineering-sync/internal/model"
	"engineering-sync/pkg/llm"
	"engineering-sync/pkg/log"
)

type implSynthesizer struct {
	l   log.Logger
	gen llm.Generator

	// summaries memoizes per-task comment summaries across refresh cycles,
	// keyed by a hash of the comment set.
	summaries *expirable.LRU[string, string]
}

// New creates the narrative synthesizer. gen may be an unconfigured client;
// every stage then produces its deterministic fallback.
func New(logger log.Logger, gen llm.Generator) Synthesizer {
	return &implSynthesizer{
		l:         logger,
		gen:       gen,
		summaries: expirable.NewLRU[string, string](summaryCacheSize, nil, summaryCacheTTL),
	}
}

// SummarizeComments produces a 2-4 line narrative of a task's week.
func (s *implSynthesizer) SummarizeComments(ctx context.Context, comments []string) string {
	if len(comments) == 0 {
		return NoActivitySummary
	}

	if !s.gen.Configured() {
		return mockCommentSummary(comments)
	}

	key := commentsKey(comments)
	if cached, ok := s.summaries.Get(key); ok {
		return cached
	}

	var steps []string
	for i, c := range comments {
		steps = append(steps, fmt.Sprintf("Step %d: %s", i+1, c))
	}
	user := "Recent Activity Timeline:\n" + strings.Join(steps, "\n") +
		"\n\nWrite a 2-3 line narrative story of this week's progression:"

	summary, err := s.gen.Generate(ctx, commentSummarySystemPrompt, user)
	if err != nil {
		s.l.Warnf(ctx, "narrative: comment summarization failed: %v", err)
		return SummaryFailurePrefix + err.Error()
	}

	s.summaries.Add(key, summary)
	return summary
}

// CategorySummary orchestrates the six-stage pipeline:
// rule-based partition -> priority filtering -> theme detection ->
// clustering (folded into themes) -> TF-IDF keywords -> narrative synthesis.
func (s *implSynthesizer) CategorySummary(ctx context.Context, categoryName string, tasks []model.Task) string {
	if len(tasks) == 0 {
		return ""
	}

	high, blocked, inProgress := partitionTasks(tasks)
	themes := s.detectThemes(ctx, tasks)
	keywords := ExtractKeywords(tasks)

	return s.synthesizeNarrative(ctx, categoryName, len(high), len(blocked), len(inProgress), themes, keywords)
}

// partitionTasks splits by plain string matching; no model involved.
func partitionTasks(tasks []model.Task) (high, blocked, inProgress []model.Task) {
	for _, t := range tasks {
		status := strings.ToLower(t.Status)
		if strings.EqualFold(t.Priority, model.PriorityHigh) {
			high = append(high, t)
		}
		if strings.Contains(status, "blocked") {
			blocked = append(blocked, t)
		}
		if strings.Contains(status, "in progress") {
			inProgress = append(inProgress, t)
		}
	}
	return high, blocked, inProgress
}

// detectThemes asks the model to group the first themeTaskLimit tasks into
// 2-3 short theme labels.
func (s *implSynthesizer) detectThemes(ctx context.Context, tasks []model.Task) []string {
	if !s.gen.Configured() {
		return offlineThemes
	}

	limit := len(tasks)
	if limit > themeTaskLimit {
		limit = themeTaskLimit
	}
	var lines []string
	for _, t := range tasks[:limit] {
		lines = append(lines, fmt.Sprintf("- %s: %s", t.Subject, t.SummarizedComments))
	}

	reply, err := s.gen.Generate(ctx, themeDetectionSystemPrompt, "Tasks:\n"+strings.Join(lines, "\n"))
	if err != nil {
		s.l.Warnf(ctx, "narrative: theme detection failed: %v", err)
		return defaultThemes
	}

	var themes []string
	for _, part := range strings.Split(reply, ",") {
		if theme := strings.TrimSpace(part); theme != "" {
			themes = append(themes, theme)
		}
	}
	if len(themes) == 0 {
		return defaultThemes
	}
	return themes
}

func (s *implSynthesizer) synthesizeNarrative(ctx context.Context, category string, high, blocked, inProgress int, themes, keywords []string) string {
	user := fmt.Sprintf(
		"Category: %s\nMomentum: %d in progress, %d blocked.\nHigh Priority Items: %d active.\nDetected Themes: %s\nTechnical Keyphrases: %s\nGenerate the paragraph summary:",
		category, inProgress, blocked, high,
		strings.Join(themes, ", "), strings.Join(keywords, ", "),
	)

	if !s.gen.Configured() {
		return offlineNarrative(category, high, blocked, inProgress, themes, keywords)
	}

	summary, err := s.gen.Generate(ctx, narrativeSynthesisSystemPrompt, user)
	if err != nil {
		s.l.Warnf(ctx, "narrative: synthesis failed for category %q: %v", category, err)
		return SynthesisFailurePrefix + err.Error()
	}
	return summary
}

// offlineNarrative is the deterministic stand-in used without a credential.
func offlineNarrative(category string, high, blocked, inProgress int, themes, keywords []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s workstream currently tracks %d in-progress and %d blocked items, with %d flagged high priority. ",
		category, inProgress, blocked, high)
	fmt.Fprintf(&b, "Activity clusters around %s.", strings.Join(themes, " and "))
	if len(keywords) > 0 {
		fmt.Fprintf(&b, " Recurring technical topics include %s.", strings.Join(keywords, ", "))
	}
	b.WriteString(" Overall momentum is steady for the period.")
	return b.String()
}

// mockCommentSummary is the deterministic truncated-concatenation stand-in.
func mockCommentSummary(comments []string) string {
	preview := comments
	if len(preview) > 2 {
		preview = preview[:2]
	}
	return fmt.Sprintf("[MOCK SUMMARY] Summarized %d comments: %s...", len(comments), strings.Join(preview, " | "))
}

func commentsKey(comments []string) string {
	h := fnv.New64a()
	for _, c := range comments {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
