package taskapi

import (
	"context"

	"engineering-sync/internal/model"
)

// GetAllCategories fetches the full category listing. A transport or parsing
// failure is logged and degraded to an empty list.
//
// The upstream listing is known to omit one category; a descriptor for it is
// synthesized with a fixed identifier unless a category of that name is
// already present (compared case-insensitively, trimmed).
func (c *Client) GetAllCategories(ctx context.Context) []CategoryRef {
	refs := []CategoryRef{}

	data, err := c.getJSON(ctx, endpointAllCategories, nil, listTimeout)
	if err != nil {
		c.l.Errorf(ctx, "taskapi: failed to fetch categories: %v", err)
	} else if records, ok := normalizeList(data, "Data", "categories"); ok {
		for _, rec := range records {
			refs = append(refs, recordToCategoryRef(rec))
		}
	}

	return injectMissingCategory(ctx, c, refs)
}

func injectMissingCategory(ctx context.Context, c *Client, refs []CategoryRef) []CategoryRef {
	target := model.NormalizeName(MissingCategoryName)
	for _, ref := range refs {
		if model.NormalizeName(ref.Name) == target {
			return refs
		}
	}

	c.l.Infof(ctx, "taskapi: injecting missing %q category", MissingCategoryName)
	return append(refs, CategoryRef{ID: MissingCategoryID, Name: MissingCategoryName})
}
