package narrative

import (
	"math"
	"sort"
	"strings"

	"engineering-sync/internal/model"
	"engineering-sync/internal/rank"
)

// ExtractKeywords runs a deterministic TF-IDF pass over each task's subject
// plus summarized activity and returns up to keywordLimit top-scoring terms.
// Always available: no model call involved.
func ExtractKeywords(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return nil
	}

	docs := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		tokens := rank.Tokenize(t.Subject + " " + t.SummarizedComments)
		filtered := tokens[:0]
		for _, tok := range tokens {
			if !stopWords[tok] {
				filtered = append(filtered, tok)
			}
		}
		docs = append(docs, filtered)
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
	scores := make(map[string]float64)
	for _, doc := range docs {
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}
		for term, count := range tf {
			idf := math.Log(numDocs / float64(1+df[term]))
			scores[term] += float64(count) * idf
		}
	}

	terms := make([]string, 0, len(scores))
	for term := range scores {
		terms = append(terms, term)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if scores[terms[i]] != scores[terms[j]] {
			return scores[terms[i]] > scores[terms[j]]
		}
		return strings.Compare(terms[i], terms[j]) < 0
	})

	if len(terms) > keywordLimit {
		terms = terms[:keywordLimit]
	}
	return terms
}
