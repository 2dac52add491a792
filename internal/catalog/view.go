package catalog

import (
	"time"

	"github.com/ppiankov/lovewall/internal/cache"
	"github.com/ppiankov/lovewall/internal/model"
)

// View filters a catalog, memoizing results per (category, query).
// A View with a nil memo recomputes every call.
type View struct {
	catalog *Catalog
	memo    cache.Cache[[]model.ProofItem]
	ttl     time.Duration
}

// NewView creates a view. A ttl of zero disables memoization.
func NewView(c *Catalog, ttl time.Duration) *View {
	v := &View{catalog: c, ttl: ttl}
	if ttl > 0 {
		v.memo = cache.NewMemoryCache[[]model.ProofItem](ttl, 2*ttl)
	}
	return v
}

// Catalog returns the underlying collection
func (v *View) Catalog() *Catalog {
	return v.catalog
}

// Filter returns the matching items in catalog order
func (v *View) Filter(filter model.CategoryFilter, query string) []model.ProofItem {
	if filter == "" {
		filter = model.FilterAll
	}
	if v.memo == nil {
		return Filter(v.catalog.items, filter, query)
	}

	key := cache.Key(string(filter), query)
	if hit, ok := v.memo.Get(key); ok {
		return clone(hit)
	}

	result := Filter(v.catalog.items, filter, query)
	v.memo.Set(key, result, v.ttl)
	return clone(result)
}

// Counts returns the number of items per category, plus the "all" total
func (v *View) Counts() map[string]int {
	counts := map[string]int{model.FilterAll: len(v.catalog.items)}
	for _, c := range model.Categories() {
		counts[string(c)] = 0
	}
	for _, item := range v.catalog.items {
		counts[string(item.Category)]++
	}
	return counts
}

func clone(items []model.ProofItem) []model.ProofItem {
	out := make([]model.ProofItem, len(items))
	copy(out, items)
	return out
}
