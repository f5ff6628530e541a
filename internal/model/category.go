package model

import "strings"

// Category is a department/workstream grouping of tasks. Task order is
// significant: it is the output of the relevance ranking stage.
type Category struct {
	CategoryID      int    `json:"categoryId"`
	CategoryName    string `json:"categoryName"`
	CategorySummary string `json:"categorySummary,omitempty"`
	Tasks           []Task `json:"tasks"`
}

// NormalizeName returns the case-insensitive, whitespace-trimmed join key
// used to match categories between the live API and the subscription store.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CloneCategories returns a deep copy so enrichment never mutates cached data.
func CloneCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c
		out[i].Tasks = make([]Task, len(c.Tasks))
		copy(out[i].Tasks, c.Tasks)
		for j := range out[i].Tasks {
			if src := c.Tasks[j].FollowUpComments; src != nil {
				out[i].Tasks[j].FollowUpComments = append([]string(nil), src...)
			}
		}
	}
	return out
}

// BulletinContent is the rendered output for one recipient.
type BulletinContent struct {
	Content    string `json:"content"`
	TotalTasks int    `json:"totalTasks"`
}
