package directory

import (
	"strings"

	"localspot/internal/model"
)

// CategoryAll is the sentinel filter value matching every category.
const CategoryAll = "All"

// Filter is the pair of user-chosen constraints on the visible listing set.
// It is derived state: recomputed on every change, never persisted.
type Filter struct {
	Category string // a model.Category value, or CategoryAll
	Search   string
}

// Matches reports whether a single listing passes the filter.
// Search is case-insensitive substring containment against name and
// description; no tokenization or ranking.
func (f Filter) Matches(b model.Business) bool {
	if f.Category != "" && f.Category != CategoryAll && string(b.Category) != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// Visible returns the subset of records passing the filter, preserving the
// input order. Recomputation over a few hundred records is cheap enough to
// be unconditional, so there is no cached incremental state.
func Visible(records []model.Business, f Filter) []model.Business {
	out := make([]model.Business, 0, len(records))
	for _, b := range records {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
