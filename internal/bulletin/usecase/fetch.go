package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"engineering-sync/internal/model"
)

// categoryFetchLimit caps simultaneous in-flight category-task fetches.
const categoryFetchLimit = 10

// GetBasicCategories returns the category graph with tasks attached but no
// narratives, serving the basic cache tier when fresh.
func (uc *implUseCase) GetBasicCategories(ctx context.Context) []model.Category {
	if cached := uc.cache.GetBasic(); cached != nil {
		uc.l.Debugf(ctx, "basic cache hit (%d categories)", len(cached))
		return cached
	}

	categories := uc.fetchBasic(ctx)
	if len(categories) > 0 {
		uc.cache.SetBasic(categories)
	}
	return categories
}

// GetDashboardCategories serves the dashboard read path in cache precedence
// order: enriched tier, then basic tier, then a live fetch. Narrative
// synthesis never runs inline here; a cold cache costs one upstream round
// trip, not an enrichment cycle. The slow path mirrors the fresh listing
// into the subscription store so the manage page stays current.
func (uc *implUseCase) GetDashboardCategories(ctx context.Context) []model.Category {
	if cached := uc.cache.GetEnriched(); cached != nil {
		uc.l.Debugf(ctx, "dashboard served from enriched tier (%d categories)", len(cached))
		return cached
	}
	if cached := uc.cache.GetBasic(); cached != nil {
		uc.l.Debugf(ctx, "dashboard served from basic tier (%d categories)", len(cached))
		return cached
	}

	categories := uc.fetchBasic(ctx)
	if len(categories) > 0 {
		uc.cache.SetBasic(categories)
	}
	uc.syncCategories(ctx, categories)
	return categories
}

// fetchBasic pulls the category listing and fans out task fetches with
// bounded concurrency. Results are collected into submission-order slots so
// the output preserves upstream listing order regardless of which fetch
// finishes first.
func (uc *implUseCase) fetchBasic(ctx context.Context) []model.Category {
	refs := uc.api.GetAllCategories(ctx)
	if len(refs) == 0 {
		uc.l.Warn(ctx, "upstream returned no categories")
		return []model.Category{}
	}

	categories := make([]model.Category, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(categoryFetchLimit)
	for i, ref := range refs {
		g.Go(func() error {
			categories[i] = model.Category{
				CategoryID:   ref.ID,
				CategoryName: ref.Name,
				Tasks:        uc.api.GetCategoryTasks(gctx, ref.ID),
			}
			return nil
		})
	}
	// Workers never return errors; fetch failures surface as empty task lists.
	_ = g.Wait()

	uc.l.Infof(ctx, "fetched %d categories from upstream", len(categories))
	return categories
}
