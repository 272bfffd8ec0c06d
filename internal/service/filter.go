package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/todos/internal/domain"
)

// ApplyFilter returns the items visible under f, keeping their order.
// The input slice is never modified.
func ApplyFilter(items []domain.Item, f domain.Filter) []domain.Item {
	visible := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

// SearchTitles narrows items to those whose title fuzzy-matches query
// (case-insensitive). Unlike a ranked search the original order is kept so
// the list does not jump around while typing.
func SearchTitles(items []domain.Item, query string) []domain.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	matches := fuzzy.RankFindFold(query, titles)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	results := make([]domain.Item, 0, len(matches))
	for _, match := range matches {
		results = append(results, items[match.OriginalIndex])
	}
	return results
}
