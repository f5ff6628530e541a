package rank

import (
	"math"
	"testing"

	"engineering-sync/internal/model"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"Lowercases And Splits", "Fix LOGIN Bug", []string{"fix", "login", "bug"}},
		{"Drops Short Tokens", "go to DB at 9", nil},
		{"Word Runs Only", "auth-service: retry/backoff!", []string{"auth", "service", "retry", "backoff"}},
		{"Empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestComputeScores(t *testing.T) {
	t.Run("Empty Document Scores Zero", func(t *testing.T) {
		tasks := []model.Task{
			{TaskID: 1, Subject: "a b"}, // all tokens under length 3
			{TaskID: 2, Subject: "database migration"},
		}
		ComputeScores(tasks)
		if tasks[0].ImportanceScore != 0.0 {
			t.Errorf("empty doc score = %v, want 0", tasks[0].ImportanceScore)
		}
	})

	t.Run("Distinctive Terms Outscore Common Ones", func(t *testing.T) {
		tasks := []model.Task{
			{TaskID: 1, Subject: "deploy service", FollowUpComments: []string{"deploy deploy"}},
			{TaskID: 2, Subject: "deploy service"},
			{TaskID: 3, Subject: "deploy unicorn"},
		}
		ComputeScores(tasks)
		// "unicorn" appears in one doc of three; terms shared by all score ln(1)=0.
		if tasks[2].ImportanceScore <= tasks[1].ImportanceScore {
			t.Errorf("distinctive doc %v should outscore common doc %v",
				tasks[2].ImportanceScore, tasks[1].ImportanceScore)
		}
	})

	t.Run("Scores Rounded To Four Decimals", func(t *testing.T) {
		tasks := []model.Task{
			{TaskID: 1, Subject: "alpha beta gamma"},
			{TaskID: 2, Subject: "delta epsilon"},
		}
		ComputeScores(tasks)
		for _, task := range tasks {
			scaled := task.ImportanceScore * 10000
			if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
				t.Errorf("score %v not rounded to 4 decimals", task.ImportanceScore)
			}
		}
	})
}

func TestRankTasks(t *testing.T) {
	t.Run("Descending Order", func(t *testing.T) {
		tasks := []model.Task{
			{TaskID: 1, Subject: "shared words only", FollowUpComments: []string{"shared words only"}},
			{TaskID: 2, Subject: "quantum entanglement analyzer"},
			{TaskID: 3, Subject: "shared words only"},
		}
		RankTasks(tasks)
		for i := 1; i < len(tasks); i++ {
			if tasks[i-1].ImportanceScore < tasks[i].ImportanceScore {
				t.Fatalf("not descending at %d: %+v", i, tasks)
			}
		}
	})

	t.Run("Stable Ties Preserve Input Order", func(t *testing.T) {
		// Identical documents all score identically; order must not change.
		tasks := []model.Task{
			{TaskID: 10, Subject: "same subject text"},
			{TaskID: 20, Subject: "same subject text"},
			{TaskID: 30, Subject: "same subject text"},
		}
		RankTasks(tasks)
		if tasks[0].TaskID != 10 || tasks[1].TaskID != 20 || tasks[2].TaskID != 30 {
			t.Errorf("tie order changed: %+v", tasks)
		}
	})

	t.Run("Deterministic Across Runs", func(t *testing.T) {
		build := func() []model.Task {
			return []model.Task{
				{TaskID: 1, Subject: "fix login bug", FollowUpComments: []string{"auth token expiry"}},
				{TaskID: 2, Subject: "update docs"},
				{TaskID: 3, Subject: "cleanup database", FollowUpComments: []string{"vacuum analyze"}},
			}
		}
		first := build()
		second := build()
		RankTasks(first)
		RankTasks(second)
		for i := range first {
			if first[i].TaskID != second[i].TaskID || first[i].ImportanceScore != second[i].ImportanceScore {
				t.Fatalf("runs diverged at %d: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}
