package service

import (
	"testing"

	"github.com/mmcdole/todos/internal/domain"
)

var filterItems = []domain.Item{
	{ID: 1, Title: "buy milk"},
	{ID: 2, Title: "walk dog", Completed: true},
	{ID: 3, Title: "write report"},
	{ID: 4, Title: "call mom", Completed: true},
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		filter domain.Filter
		want   []int
	}{
		{domain.FilterAll, []int{1, 2, 3, 4}},
		{domain.FilterActive, []int{1, 3}},
		{domain.FilterCompleted, []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got := ApplyFilter(filterItems, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("item %d: got id %d, want %d", i, got[i].ID, id)
				}
			}

			again := ApplyFilter(got, tt.filter)
			if len(again) != len(got) {
				t.Errorf("filter is not idempotent: %d then %d", len(got), len(again))
			}
		})
	}
}

func TestApplyFilter_Partitions(t *testing.T) {
	active := ApplyFilter(filterItems, domain.FilterActive)
	completed := ApplyFilter(filterItems, domain.FilterCompleted)

	if len(active)+len(completed) != len(filterItems) {
		t.Fatalf("active (%d) + completed (%d) != all (%d)", len(active), len(completed), len(filterItems))
	}
	seen := make(map[int]bool)
	for _, item := range append(active, completed...) {
		if seen[item.ID] {
			t.Errorf("id %d appears in both partitions", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestSearchTitles(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty query", "  ", []int{1, 2, 3, 4}},
		{"case insensitive", "MILK", []int{1}},
		{"keeps list order", "al", []int{2, 4}},
		{"no match", "xyz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchTitles(filterItems, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want ids %v", got, tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("item %d: got id %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}
