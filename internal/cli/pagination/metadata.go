package pagination

import (
	"github.com/rshade/commentdash/internal/engine"
)

// PaginationMeta contains metadata about a derived comment page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int      `json:"current_page"        yaml:"current_page"`
	PageSize    int      `json:"page_size"           yaml:"page_size"`
	TotalPages  int      `json:"total_pages"         yaml:"total_pages"`
	TotalItems  int      `json:"total_items"         yaml:"total_items"`
	StartItem   int      `json:"start_item,omitempty" yaml:"start_item,omitempty"`
	EndItem     int      `json:"end_item,omitempty"   yaml:"end_item,omitempty"`
	Empty       bool     `json:"empty"               yaml:"empty"`
	HasPrevious bool     `json:"has_previous"        yaml:"has_previous"`
	HasNext     bool     `json:"has_next"            yaml:"has_next"`
	Pages       []string `json:"pages"               yaml:"pages"`
	Search      string   `json:"search,omitempty"    yaml:"search,omitempty"`
	Sort        string   `json:"sort"                yaml:"sort"`
}

// NewPaginationMeta creates pagination metadata from a derived view.
// TotalItems counts the comments matching the search, not the full record set.
func NewPaginationMeta(view engine.DerivedView) PaginationMeta {
	pages := make([]string, len(view.Pages))
	for i, label := range view.Pages {
		pages[i] = label.String()
	}

	return PaginationMeta{
		CurrentPage: view.CurrentPage,
		PageSize:    view.PageSize,
		TotalPages:  view.TotalPages,
		TotalItems:  view.FilteredCount,
		StartItem:   view.Range.Start,
		EndItem:     view.Range.End,
		Empty:       view.Range.Empty,
		HasPrevious: view.HasPrevious(),
		HasNext:     view.HasNext(),
		Pages:       pages,
		Search:      view.SearchTerm,
		Sort:        FormatSort(view.Sort),
	}
}
