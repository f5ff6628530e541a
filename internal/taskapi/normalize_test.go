package taskapi

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return data
}

func TestNormalizeList(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		keys    []string
		want    int
		ok      bool
	}{
		{"Top Level Array", `[{"TaskId": 1}, {"TaskId": 2}]`, []string{"Data"}, 2, true},
		{"Wrapped Under Data", `{"Data": [{"TaskId": 1}]}`, []string{"Data", "tasks"}, 1, true},
		{"Wrapped Under Secondary Key", `{"tasks": [{"TaskId": 1}]}`, []string{"Data", "tasks"}, 1, true},
		{"Wrapped Under Third Key", `{"tasksList": [{"TaskId": 1}]}`, []string{"Data", "tasks", "tasksList"}, 1, true},
		{"Object Without Known Keys", `{"rows": [{"TaskId": 1}]}`, []string{"Data"}, 0, false},
		{"Scalar Payload", `42`, []string{"Data"}, 0, false},
		{"Null Payload", `null`, []string{"Data"}, 0, false},
		{"Non Object Items Skipped", `[1, {"TaskId": 5}, "x"]`, []string{"Data"}, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, ok := normalizeList(decode(t, tc.payload), tc.keys...)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if len(records) != tc.want {
				t.Errorf("got %d records, want %d", len(records), tc.want)
			}
		})
	}
}

func TestNormalizeHistory(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    int
		ok      bool
	}{
		{"Nested Data Details", `{"Data": {"FollowUpHistoryDetails": [{"Comment": "a"}, {"Comment": "b"}]}}`, 2, true},
		{"Data As Array", `{"Data": [{"Comment": "a"}]}`, 1, true},
		{"Top Level Details", `{"FollowUpHistoryDetails": [{"Comment": "a"}]}`, 1, true},
		{"Bare Array", `[{"Comment": "a"}]`, 1, true},
		{"Unrecognized Shape", `{"other": true}`, 0, false},
		{"Scalar", `"oops"`, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, ok := normalizeHistory(decode(t, tc.payload))
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if len(records) != tc.want {
				t.Errorf("got %d records, want %d", len(records), tc.want)
			}
		})
	}
}

func TestRecordToTask(t *testing.T) {
	t.Run("Upstream Field Names", func(t *testing.T) {
		rec := map[string]any{
			"TaskId":             float64(131),
			"SubjectLine":        "Fix Login Bug",
			"LastStatusCode":     "In Progress",
			"TaskPriority":       "High",
			"TaskAssignedtoName": "Alice",
			"taskSummary":        "Quick recap of the thread.",
		}
		task := recordToTask(rec)
		if task.TaskID != 131 || task.Subject != "Fix Login Bug" || task.Status != "In Progress" ||
			task.Priority != "High" || task.AssigneeName != "Alice" {
			t.Errorf("unexpected mapping: %+v", task)
		}
		if task.Note != "Quick recap of the thread." {
			t.Errorf("Note = %q, want taskSummary carried over", task.Note)
		}
	})

	t.Run("Defaults For Missing Fields", func(t *testing.T) {
		task := recordToTask(map[string]any{"TaskId": float64(9)})
		if task.Subject != "No Subject" || task.Status != "Unknown" ||
			task.Priority != "Normal" || task.AssigneeName != "Unassigned" {
			t.Errorf("unexpected defaults: %+v", task)
		}
		if task.Note != "" {
			t.Errorf("Note = %q, want empty when upstream omits it", task.Note)
		}
	})
}

func TestRecordToCategoryRef(t *testing.T) {
	ref := recordToCategoryRef(map[string]any{"TaskCategoryId": float64(7), "TaskCategoryName": "Bug Fixes"})
	if ref.ID != 7 || ref.Name != "Bug Fixes" {
		t.Errorf("unexpected ref: %+v", ref)
	}

	ref = recordToCategoryRef(map[string]any{"CategoryId": float64(12), "CategoryName": "Features"})
	if ref.ID != 12 || ref.Name != "Features" {
		t.Errorf("unexpected ref from alternate keys: %+v", ref)
	}
}
