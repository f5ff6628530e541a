package bulletin

import (
	"context"

	"engineering-sync/internal/model"
	"engineering-sync/internal/subscription"
	"engineering-sync/internal/taskapi"
)

// Fetcher is the upstream case-management API surface the pipeline consumes.
// Every method degrades to an empty result on failure.
type Fetcher interface {
	GetAllCategories(ctx context.Context) []taskapi.CategoryRef
	GetCategoryTasks(ctx context.Context, categoryID int) []model.Task
	GetTaskFollowUpHistory(ctx context.Context, taskID int) []string
}

// UseCase defines the business logic interface for the bulletin domain.
type UseCase interface {
	// GetAllCategoriesWithTasks returns the fully enriched category graph,
	// serving from cache when fresh. It never fails; the worst case is an
	// empty list.
	GetAllCategoriesWithTasks(ctx context.Context) []model.Category

	// GetBasicCategories returns the unenriched category graph (tasks
	// attached, no narratives), serving from cache when fresh.
	GetBasicCategories(ctx context.Context) []model.Category

	// GetDashboardCategories serves the dashboard read path: enriched
	// tier when fresh, basic tier next, live fetch last. It never blocks
	// on narrative synthesis.
	GetDashboardCategories(ctx context.Context) []model.Category

	// InvalidateCache drops both cache tiers.
	InvalidateCache(ctx context.Context)

	// Refresh invalidates and rebuilds the enriched graph.
	Refresh(ctx context.Context) []model.Category

	// ResolveForUser computes the personalized category set for one
	// recipient's subscription list.
	ResolveForUser(ctx context.Context, categories []model.Category, subs []subscription.CategoryRef) []model.Category

	// Broadcast enriches, personalizes, and delivers a bulletin to every
	// known recipient. Per-recipient failures are counted, not fatal.
	Broadcast(ctx context.Context) (BroadcastReport, error)
}
