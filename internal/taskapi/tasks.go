package taskapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"engineering-sync/internal/model"
)

// fetchStrategy is one step in the ordered fallback chain for category task
// fetches. Strategies run in sequence; the first non-empty result wins.
type fetchStrategy struct {
	name    string
	applies func(categoryID int, previous []model.Task) bool
	run     func(ctx context.Context, categoryID int) ([]model.Task, error)
}

func (c *Client) taskStrategies() []fetchStrategy {
	return []fetchStrategy{
		{
			name:    "category",
			applies: func(int, []model.Task) bool { return true },
			run: func(ctx context.Context, categoryID int) ([]model.Task, error) {
				params := url.Values{"CategoryId": {strconv.Itoa(categoryID)}}
				return c.fetchTaskList(ctx, endpointCategoryTasks, params, primaryTasksTimeout, "Data", "tasks", "tasksList")
			},
		},
		{
			// Identifiers above the threshold may actually be department IDs.
			name: "department",
			applies: func(categoryID int, previous []model.Task) bool {
				return len(previous) == 0 && categoryID > departmentIDThreshold
			},
			run: func(ctx context.Context, categoryID int) ([]model.Task, error) {
				params := url.Values{"DepartmentId": {strconv.Itoa(categoryID)}}
				return c.fetchTaskList(ctx, endpointDepartmentTasks, params, deptTasksTimeout, "Data")
			},
		},
	}
}

// GetCategoryTasks returns the tasks currently associated with a category.
// Every failure along the fallback chain is logged and swallowed; the worst
// case is an empty list, never an error.
func (c *Client) GetCategoryTasks(ctx context.Context, categoryID int) []model.Task {
	var tasks []model.Task

	for _, strategy := range c.taskStrategies() {
		if !strategy.applies(categoryID, tasks) {
			continue
		}

		result, err := strategy.run(ctx, categoryID)
		if err != nil {
			c.l.Warnf(ctx, "taskapi: %s task fetch failed for category %d: %v", strategy.name, categoryID, err)
			continue
		}
		if len(result) > 0 {
			if strategy.name != "category" {
				c.l.Infof(ctx, "taskapi: fallback %s fetch returned %d tasks for category %d", strategy.name, len(result), categoryID)
			}
			tasks = result
		}
	}

	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (c *Client) fetchTaskList(ctx context.Context, path string, params url.Values, timeout time.Duration, keys ...string) ([]model.Task, error) {
	data, err := c.getJSON(ctx, path, params, timeout)
	if err != nil {
		return nil, err
	}

	records, ok := normalizeList(data, keys...)
	if !ok {
		return []model.Task{}, nil
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, recordToTask(rec))
	}
	return tasks, nil
}
