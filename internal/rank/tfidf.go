// Package rank scores tasks within a category by TF-IDF relevance. It is
// pure computation: no I/O, no model calls, deterministic for a given input.
package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"engineering-sync/internal/model"
)

// minTokenLength discards very short words before scoring.
const minTokenLength = 3

var wordPattern = regexp.MustCompile(`\w+`)

// Tokenize lowercases text and extracts runs of word characters, dropping
// tokens shorter than minTokenLength.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) >= minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ComputeScores assigns each task an importance score, treating the task's
// subject plus joined follow-up comments as one document and the category's
// tasks as the corpus:
//
//	score = Σ_term count×ln(N/df[term]) / len(doc), rounded to 4 decimals
//
// Tasks with no tokens score 0.
func ComputeScores(tasks []model.Task) {
	if len(tasks) == 0 {
		return
	}

	docs := make([][]string, len(tasks))
	for i, t := range tasks {
		docs[i] = Tokenize(t.Subject + " " + strings.Join(t.FollowUpComments, " "))
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	numDocs := float64(len(docs))
	for i := range tasks {
		doc := docs[i]
		if len(doc) == 0 {
			tasks[i].ImportanceScore = 0.0
			continue
		}

		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}

		var score float64
		for term, count := range tf {
			score += float64(count) * math.Log(numDocs/float64(df[term]))
		}

		tasks[i].ImportanceScore = round4(score / float64(len(doc)))
	}
}

// RankTasks scores and re-sorts tasks by descending importance. The sort is
// stable: ties keep whatever order the previous stage produced.
func RankTasks(tasks []model.Task) {
	ComputeScores(tasks)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ImportanceScore > tasks[j].ImportanceScore
	})
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
