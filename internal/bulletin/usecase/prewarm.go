package usecase

import (
	"context"

	"engineering-sync/internal/model"
	"engineering-sync/internal/subscription"
)

// InvalidateCache drops both cache tiers.
func (uc *implUseCase) InvalidateCache(ctx context.Context) {
	uc.cache.InvalidateAll()
	uc.l.Info(ctx, "cache invalidated")
}

// Refresh forces a full rebuild of the enriched graph.
func (uc *implUseCase) Refresh(ctx context.Context) []model.Category {
	uc.cache.InvalidateAll()
	return uc.GetAllCategoriesWithTasks(ctx)
}

// ResolveForUser computes the personalized category set for one recipient.
func (uc *implUseCase) ResolveForUser(ctx context.Context, categories []model.Category, subs []subscription.CategoryRef) []model.Category {
	resolved := subscription.Resolve(categories, subs)
	uc.l.Debugf(ctx, "resolved %d categories from %d subscriptions", len(resolved), len(subs))
	return resolved
}
