package taskapi

import (
	"context"
	"sort"
	"strings"
	"time"
)

// GetTaskFollowUpHistory returns a task's follow-up comments from the
// trailing 7-day window, oldest first. The bulk fetch (PageSize=-1) is
// retried once with a small page on failure; if both fail the result is an
// empty list, which callers must read as "no recent activity".
func (c *Client) GetTaskFollowUpHistory(ctx context.Context, taskID int) []string {
	records, err := c.fetchHistory(ctx, taskID, PageSizeAll, historyBulkTimeout)
	if err != nil {
		c.l.Warnf(ctx, "taskapi: bulk history fetch failed for task %d, retrying with small page: %v", taskID, err)
		records, err = c.fetchHistory(ctx, taskID, PageSizeFallback, historySmallTimeout)
		if err != nil {
			c.l.Errorf(ctx, "taskapi: history fallback fetch failed for task %d: %v", taskID, err)
			return []string{}
		}
	}

	return filterRecentComments(records, c.now())
}

func (c *Client) fetchHistory(ctx context.Context, taskID, pageSize int, timeout time.Duration) ([]map[string]any, error) {
	data, err := c.postJSON(ctx, endpointFollowUpHistory, historyRequest{TaskID: taskID, PageSize: pageSize}, timeout)
	if err != nil {
		return nil, err
	}

	records, ok := normalizeHistory(data)
	if !ok {
		return []map[string]any{}, nil
	}
	return records, nil
}

// filterRecentComments keeps entries dated within the 7-day window ending at
// now, sorted ascending by timestamp. Entries with unparsable timestamps or
// blank comment text are dropped silently.
func filterRecentComments(records []map[string]any, now time.Time) []string {
	threshold := now.Add(-HistoryWindow)

	type datedComment struct {
		at   time.Time
		text string
	}
	dated := make([]datedComment, 0, len(records))

	for _, rec := range records {
		raw, ok := rec["FollowUpDate"].(string)
		if !ok || raw == "" {
			continue
		}

		at, err := parseFollowUpDate(raw)
		if err != nil {
			continue
		}
		if at.Before(threshold) {
			continue
		}

		text := commentText(rec)
		if text == "" {
			continue
		}
		dated = append(dated, datedComment{at: at, text: text})
	}

	sort.SliceStable(dated, func(i, j int) bool { return dated[i].at.Before(dated[j].at) })

	comments := make([]string, len(dated))
	for i, dc := range dated {
		comments[i] = dc.text
	}
	return comments
}

// parseFollowUpDate tolerates a trailing UTC "Z" marker and fractional
// seconds beyond microsecond precision (truncated to 6 digits).
func parseFollowUpDate(raw string) (time.Time, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if len(frac) > 6 {
			frac = frac[:6]
		}
		s = s[:i+1] + frac
	}

	layouts := []string{
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// commentText extracts the comment from the first present candidate field.
func commentText(rec map[string]any) string {
	for _, key := range commentFieldCandidates {
		if v, ok := rec[key].(string); ok {
			if text := strings.TrimSpace(v); text != "" {
				return text
			}
		}
	}
	return ""
}
