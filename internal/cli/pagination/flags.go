package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/engine"
)

// Flag names shared by the commands that derive a comment page.
const (
	FlagSearch   = "search"
	FlagSort     = "sort"
	FlagPage     = "page"
	FlagPageSize = "page-size"
)

// Sort expression values.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
	SortNone      = "none"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'column' or 'column:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort column cannot be empty")
	ErrPageOutOfRange    = errors.New("page out of range")
)

// ListParams holds the flags that override the persisted view state.
// A zero Page or PageSize means the flag was not given.
type ListParams struct {
	// Search is the case-insensitive search term.
	Search string

	// Sort is a sort expression: "column", "column:order", or "none".
	Sort string

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of comments per page. Any positive value is accepted.
	PageSize int
}

// AddFlags registers the list flags on cmd, bound to p.
func AddFlags(cmd *cobra.Command, p *ListParams) {
	cmd.Flags().StringVar(&p.Search, FlagSearch, "", "search name, email, and comment body (case-insensitive)")
	cmd.Flags().StringVar(&p.Sort, FlagSort, "",
		"sort by column: postId, name, email, optionally with :asc or :desc; 'none' clears the sort")
	cmd.Flags().IntVar(&p.Page, FlagPage, 0, "page number to show (1-based)")
	cmd.Flags().IntVar(&p.PageSize, FlagPageSize, 0, "comments per page (offered sizes are 10, 50, 100)")
}

// Validate checks the parameter bounds and the sort expression.
func (p ListParams) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (column:order).
const sortPartsMax = 2

// ParseSort parses a sort expression in the format "column" or "column:order".
// Examples: "name", "postId:desc", "email:asc". An empty expression or "none"
// yields a nil spec (insertion order).
func ParseSort(sortStr string) (*engine.SortSpec, error) {
	trimmed := strings.TrimSpace(sortStr)
	if trimmed == "" || strings.EqualFold(trimmed, SortNone) {
		return nil, nil //nolint:nilnil // A nil spec is the valid "unsorted" result.
	}

	parts := strings.Split(trimmed, ":")
	var field, order string
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return nil, ErrEmptySortField
	}

	column, err := engine.ParseColumn(field)
	if err != nil {
		return nil, err
	}

	switch order {
	case SortOrderAsc:
		return &engine.SortSpec{Column: column, Direction: engine.Ascending}, nil
	case SortOrderDesc:
		return &engine.SortSpec{Column: column, Direction: engine.Descending}, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
}

// ChangedFunc reports whether the named flag was set on the command line.
type ChangedFunc func(name string) bool

// ApplyTo applies the parameters whose flags changed to lv, in the order a
// user would: search, sort, page size, then page. Search and page-size
// changes return to page 1 as the engine does. A page outside the derived
// range is reported as ErrPageOutOfRange and leaves the page unchanged.
func (p ListParams) ApplyTo(lv *engine.ListView, changed ChangedFunc) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if changed(FlagSearch) {
		lv.SetSearchTerm(p.Search)
	}
	if changed(FlagSort) {
		spec, err := ParseSort(p.Sort)
		if err != nil {
			return err
		}
		lv.SortBy(spec)
	}
	if changed(FlagPageSize) && p.PageSize > 0 {
		lv.SetPageSize(p.PageSize)
	}
	if changed(FlagPage) && p.Page > 0 {
		if p.Page > lv.TotalPages() {
			return fmt.Errorf("%w: %d (1-%d)", ErrPageOutOfRange, p.Page, lv.TotalPages())
		}
		lv.SetPage(p.Page)
	}
	return nil
}

// FormatSort renders spec as a sort expression accepted by ParseSort.
func FormatSort(spec *engine.SortSpec) string {
	if spec == nil {
		return SortNone
	}
	var field string
	switch spec.Column {
	case engine.ColumnPostID:
		field = "postId"
	case engine.ColumnName:
		field = "name"
	case engine.ColumnEmail:
		field = "email"
	default:
		return SortNone
	}
	return field + ":" + string(spec.Direction)
}
