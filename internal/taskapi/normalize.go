package taskapi

import (
	"strings"

	"engineering-sync/internal/model"
)

// The upstream API is loose about response shapes: a top-level array, an
// object wrapping the array under one of several keys, or something else
// entirely. Normalization turns all of those into (records, ok); anything
// unrecognized is an explicit miss, never an error.

// normalizeList accepts a decoded JSON payload and returns the record list
// found either at the top level or under one of the candidate keys.
func normalizeList(data any, keys ...string) ([]map[string]any, bool) {
	switch v := data.(type) {
	case []any:
		return toRecords(v), true
	case map[string]any:
		for _, key := range keys {
			if inner, ok := v[key].([]any); ok {
				return toRecords(inner), true
			}
		}
	}
	return nil, false
}

// normalizeHistory unwraps the nested {Data: {FollowUpHistoryDetails: [...]}}
// shape of the history endpoint, tolerating flattened variants.
func normalizeHistory(data any) ([]map[string]any, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		if list, listOK := data.([]any); listOK {
			return toRecords(list), true
		}
		return nil, false
	}

	switch inner := obj["Data"].(type) {
	case map[string]any:
		if details, detailsOK := inner["FollowUpHistoryDetails"].([]any); detailsOK {
			return toRecords(details), true
		}
	case []any:
		return toRecords(inner), true
	}

	if details, detailsOK := obj["FollowUpHistoryDetails"].([]any); detailsOK {
		return toRecords(details), true
	}
	return nil, false
}

func toRecords(items []any) []map[string]any {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// recordToTask maps one upstream task record onto the domain model. Field
// names vary between endpoints, so every field has a candidate key list.
func recordToTask(rec map[string]any) model.Task {
	return model.Task{
		TaskID:       intField(rec, "TaskId", "taskId"),
		Subject:      stringField(rec, "No Subject", "SubjectLine", "taskSubject", "TaskSubject"),
		Status:       stringField(rec, "Unknown", "LastStatusCode", "taskStatus", "TaskStatus"),
		Priority:     stringField(rec, "Normal", "TaskPriority", "taskPriority"),
		AssigneeName: stringField(rec, "Unassigned", "TaskAssignedtoName", "assigneeName", "AssigneeName"),
		Note:         stringField(rec, "", "taskSummary", "TaskSummary"),
	}
}

// recordToCategoryRef maps one upstream category record onto CategoryRef.
func recordToCategoryRef(rec map[string]any) CategoryRef {
	return CategoryRef{
		ID:   intField(rec, "TaskCategoryId", "CategoryId"),
		Name: stringField(rec, "", "TaskCategoryName", "CategoryName"),
	}
}

func intField(rec map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

func stringField(rec map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return fallback
}
