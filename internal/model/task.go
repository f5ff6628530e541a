package model

import "strings"

// Task priority values as reported by the upstream case-management system.
// Anything else sorts after Low.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// StatusDone is the sentinel status that excludes a task from bulletins.
// Comparison is case-insensitive.
const StatusDone = "done"

// Task is a single trackable work item fetched from the upstream API and
// enriched during one bulletin cycle.
type Task struct {
	TaskID             int      `json:"taskId"`
	Subject            string   `json:"taskSubject"`
	Status             string   `json:"taskStatus"`
	Priority           string   `json:"taskPriority"`
	AssigneeName       string   `json:"assigneeName"`
	FollowUpComments   []string `json:"followUpComments,omitempty"`
	SummarizedComments string   `json:"summarizedComments,omitempty"`
	Note               string   `json:"taskSummary,omitempty"`
	ImportanceScore    float64  `json:"importanceScore"`
}

// IsDone reports whether the task's status resolves to "Done".
func (t Task) IsDone() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), StatusDone)
}

// PriorityRank maps a priority label to its sort position:
// High before Medium before Low before anything unrecognized.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
