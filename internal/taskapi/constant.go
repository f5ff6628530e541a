package taskapi

import "time"

const (
	// DefaultBaseURL is the upstream case-management API root.
	DefaultBaseURL = "https://hrms.scribeemr.com/api/HrmsWebApi"

	// Endpoints.
	endpointAllCategories   = "/GetAllCategories"
	endpointCategoryTasks   = "/GetCategoryTasks"
	endpointDepartmentTasks = "/GetDepartmentTasks"
	endpointFollowUpHistory = "/GetTaskFollowUpHistory"

	// departmentIDThreshold: identifiers above this are plausibly department
	// IDs in the upstream system, which makes the department endpoint worth
	// trying when the category endpoint comes back empty.
	departmentIDThreshold = 1000

	// PageSizeAll is the upstream sentinel for "return the full history".
	PageSizeAll = -1

	// PageSizeFallback bounds the retry after an oversized-response failure.
	PageSizeFallback = 20

	// HistoryWindow restricts follow-up comments to recent activity.
	HistoryWindow = 7 * 24 * time.Hour

	// Per-call timeouts, scaled to expected payload size.
	listTimeout         = 300 * time.Second
	primaryTasksTimeout = 300 * time.Second
	deptTasksTimeout    = 60 * time.Second
	historyBulkTimeout  = 60 * time.Second
	historySmallTimeout = 30 * time.Second

	// MissingCategoryID is the fixed identifier for the category the upstream
	// listing is known to omit.
	MissingCategoryID = 1022

	// MissingCategoryName is the display name of that category.
	MissingCategoryName = "ScribeRyte-related tasks"
)

// commentFieldCandidates is the prioritized list of keys a history entry may
// carry its comment text under. First present, non-blank field wins.
var commentFieldCandidates = []string{
	"TaskFollowUpComments",
	"FollowUpComment",
	"Comment",
	"Description",
	"Note",
}
