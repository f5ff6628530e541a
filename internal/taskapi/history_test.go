package taskapi

import (
	"testing"
	"time"
)

func entry(date, comment string) map[string]any {
	return map[string]any{"FollowUpDate": date, "TaskFollowUpComments": comment}
}

func TestFilterRecentComments(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Seven Day Window Oldest First", func(t *testing.T) {
		records := []map[string]any{
			entry("2026-02-04T09:00:00", "six days ago"),
			entry("2026-01-01T09:00:00", "forty days ago"),
			entry("2026-02-09T09:00:00", "one day ago"),
			entry("2026-02-07T09:00:00", "three days ago"),
		}

		got := filterRecentComments(records, now)
		want := []string{"six days ago", "three days ago", "one day ago"}
		if len(got) != len(want) {
			t.Fatalf("got %d comments, want %d: %v", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("comment[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("Unparsable Timestamp Dropped", func(t *testing.T) {
		records := []map[string]any{
			entry("not-a-date", "bad"),
			entry("2026-02-09T09:00:00", "good"),
			{"TaskFollowUpComments": "no date"},
		}
		got := filterRecentComments(records, now)
		if len(got) != 1 || got[0] != "good" {
			t.Errorf("got %v, want only the parsable entry", got)
		}
	})

	t.Run("Blank Comment Dropped", func(t *testing.T) {
		records := []map[string]any{
			entry("2026-02-09T09:00:00", "   "),
			entry("2026-02-09T10:00:00", ""),
		}
		if got := filterRecentComments(records, now); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})

	t.Run("Comment Field Priority", func(t *testing.T) {
		records := []map[string]any{{
			"FollowUpDate":    "2026-02-09T09:00:00",
			"Note":            "lowest priority",
			"FollowUpComment": "wins over note",
		}}
		got := filterRecentComments(records, now)
		if len(got) != 1 || got[0] != "wins over note" {
			t.Errorf("got %v, want the higher-priority field", got)
		}
	})
}

func TestParseFollowUpDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"Plain ISO", "2026-02-09T09:00:00", true},
		{"Trailing Z", "2026-02-09T09:00:00Z", true},
		{"Microseconds", "2026-02-09T09:00:00.123456", true},
		{"Excess Fractional Digits", "2026-02-09T09:00:00.1234567890Z", true},
		{"Space Separator", "2026-02-09 09:00:00", true},
		{"Garbage", "last tuesday", false},
		{"Empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFollowUpDate(tc.raw)
			if (err == nil) != tc.ok {
				t.Errorf("parse %q: err = %v, want ok=%v", tc.raw, err, tc.ok)
			}
		})
	}

	t.Run("Truncation Preserves Instant", func(t *testing.T) {
		at, err := parseFollowUpDate("2026-02-09T09:00:00.9999999Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if at.Second() != 0 || at.Nanosecond() != 999999000 {
			t.Errorf("unexpected instant: %v", at)
		}
	})
}
