package catalog

import (
	"strings"

	"github.com/ppiankov/lovewall/internal/model"
)

// Filter returns the items that pass the category filter and contain query,
// case-insensitively, in their body, author name, or any tag.
// Input order is preserved and the result is never nil.
func Filter(items []model.ProofItem, filter model.CategoryFilter, query string) []model.ProofItem {
	needle := strings.ToLower(query)
	result := make([]model.ProofItem, 0, len(items))

	for _, item := range items {
		if !filter.Matches(item.Category) {
			continue
		}
		if needle != "" && !matchesQuery(item, needle) {
			continue
		}
		result = append(result, item)
	}

	return result
}

// matchesQuery expects needle to already be lowercased
func matchesQuery(item model.ProofItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Body), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Author.Name), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
