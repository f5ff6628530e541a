package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"engineering-sync/internal/model"
	"engineering-sync/internal/rank"
)

const (
	// EmptyCategorySummary replaces the narrative for categories left with
	// no tasks after the done-filter. The category itself stays in the
	// output so subscribers see that their stream is quiet, not missing.
	EmptyCategorySummary = "No active work items recorded in this workstream for the current period."

	// CommentFetchFailure replaces a task summary when its enrichment
	// fails outright.
	CommentFetchFailure = "Update retrieval error."
)

// GetAllCategoriesWithTasks returns the fully enriched category graph,
// serving the enriched cache tier when fresh.
func (uc *implUseCase) GetAllCategoriesWithTasks(ctx context.Context) []model.Category {
	if cached := uc.cache.GetEnriched(); cached != nil {
		uc.l.Debugf(ctx, "enriched cache hit (%d categories)", len(cached))
		return cached
	}

	cycleID := uuid.NewString()
	basic := uc.GetBasicCategories(ctx)
	if len(basic) == 0 {
		return []model.Category{}
	}

	// Enrichment mutates tasks in place, so work on a copy to keep the
	// basic tier pristine.
	enriched := uc.enrich(ctx, cycleID, model.CloneCategories(basic))
	uc.cache.SetEnriched(enriched)
	uc.l.Infof(ctx, "enrichment cycle %s complete (%d categories)", cycleID, len(enriched))
	return enriched
}

// enrich runs the full pipeline over every category. Categories are
// processed concurrently with bounded capacity, collected into
// submission-order slots so output order matches the upstream listing. A
// failure inside one category never aborts its siblings.
func (uc *implUseCase) enrich(ctx context.Context, cycleID string, categories []model.Category) []model.Category {
	out := make([]model.Category, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(categoryFetchLimit)
	for i, cat := range categories {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					uc.l.Errorf(gctx, "cycle %s: category %d enrichment panicked: %v", cycleID, cat.CategoryID, r)
					cat.CategorySummary = EmptyCategorySummary
					cat.Tasks = []model.Task{}
					out[i] = cat
				}
			}()
			out[i] = uc.enrichCategory(gctx, cat)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (uc *implUseCase) enrichCategory(ctx context.Context, cat model.Category) model.Category {
	kept := make([]model.Task, 0, len(cat.Tasks))
	for _, t := range cat.Tasks {
		if !t.IsDone() {
			kept = append(kept, t)
		}
	}
	cat.Tasks = kept

	if len(cat.Tasks) == 0 {
		cat.CategorySummary = EmptyCategorySummary
		return cat
	}

	// Task enrichment is a join-all: every task runs to completion or its
	// own timeout regardless of what happens to siblings.
	var wg sync.WaitGroup
	for i := range cat.Tasks {
		wg.Add(1)
		go func(t *model.Task) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					uc.l.Errorf(ctx, "task %d enrichment panicked: %v", t.TaskID, r)
					t.SummarizedComments = CommentFetchFailure
				}
			}()
			t.FollowUpComments = uc.api.GetTaskFollowUpHistory(ctx, t.TaskID)
			t.SummarizedComments = uc.synth.SummarizeComments(ctx, t.FollowUpComments)
		}(&cat.Tasks[i])
	}
	wg.Wait()

	// Priority first, then relevance. Relevance wins where they disagree;
	// the priority pass only decides ties in the score ordering.
	sort.SliceStable(cat.Tasks, func(a, b int) bool {
		return model.PriorityRank(cat.Tasks[a].Priority) < model.PriorityRank(cat.Tasks[b].Priority)
	})
	rank.RankTasks(cat.Tasks)

	cat.CategorySummary = uc.synth.CategorySummary(ctx, cat.CategoryName, cat.Tasks)
	return cat
}
