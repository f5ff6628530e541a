package subscription

import (
	"engineering-sync/internal/model"
)

// PlaceholderSummary is attached to synthesized categories standing in for
// subscriptions with no corresponding live data.
const PlaceholderSummary = "This department stream is currently unavailable or has been archived in the central system."

// Resolve computes the personalized category set for one recipient.
//
// Zero subscriptions means discovery mode: the full enriched list, original
// order, no placeholders. Otherwise a category is included when its ID is
// subscribed or its normalized name is subscribed; subscriptions matched by
// neither key are appended as zero-task placeholder categories so a
// subscriber never silently loses a stream they asked for.
//
// Resolution is pure and order-stable: identical inputs produce identical
// output ordering.
func Resolve(categories []model.Category, subs []CategoryRef) []model.Category {
	if len(subs) == 0 {
		return categories
	}

	subIDs := make(map[int]bool, len(subs))
	subNames := make(map[string]bool, len(subs))
	for _, sub := range subs {
		subIDs[sub.ID] = true
		subNames[model.NormalizeName(sub.Name)] = true
	}

	matched := make([]model.Category, 0, len(subs))
	for _, cat := range categories {
		if subIDs[cat.CategoryID] || subNames[model.NormalizeName(cat.CategoryName)] {
			matched = append(matched, cat)
		}
	}

	for _, sub := range subs {
		if covered(matched, sub) {
			continue
		}
		matched = append(matched, model.Category{
			CategoryID:      sub.ID,
			CategoryName:    sub.Name,
			CategorySummary: PlaceholderSummary,
			Tasks:           []model.Task{},
		})
	}

	return matched
}

// covered reports whether a subscription is already represented in the
// result by identifier or by normalized name.
func covered(categories []model.Category, sub CategoryRef) bool {
	name := model.NormalizeName(sub.Name)
	for _, cat := range categories {
		if cat.CategoryID == sub.ID || model.NormalizeName(cat.CategoryName) == name {
			return true
		}
	}
	return false
}
