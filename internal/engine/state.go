package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SortColumn names a sortable column of the comment list.
type SortColumn string

// Sortable columns. The string values are the labels persisted in view-state
// snapshots.
const (
	ColumnPostID SortColumn = "Post ID"
	ColumnName   SortColumn = "Name"
	ColumnEmail  SortColumn = "Email"
)

// Columns lists the sortable columns in display order.
func Columns() []SortColumn {
	return []SortColumn{ColumnPostID, ColumnName, ColumnEmail}
}

// Valid reports whether c is one of the sortable columns.
func (c SortColumn) Valid() bool {
	switch c {
	case ColumnPostID, ColumnName, ColumnEmail:
		return true
	default:
		return false
	}
}

// ParseColumn maps a user-supplied column name to a SortColumn. Matching is
// case-insensitive and accepts both the display label and the JSON field name.
func ParseColumn(s string) (SortColumn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "post id", "postid", "post_id", "post":
		return ColumnPostID, nil
	case "name":
		return ColumnName, nil
	case "email":
		return ColumnEmail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
}

// SortDirection is the direction of an active sort.
type SortDirection string

// Sort directions. DirectionNone is reported for columns that are not sorted.
const (
	DirectionNone SortDirection = ""
	Ascending     SortDirection = "asc"
	Descending    SortDirection = "desc"
)

// SortSpec is an active sort. A nil *SortSpec means insertion order.
type SortSpec struct {
	Column    SortColumn
	Direction SortDirection
}

// View-state defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageSizeOptions are the page sizes offered by the page-size selector.
// SetPageSize accepts any positive size; this list only drives the selector.
func PageSizeOptions() []int {
	return []int{10, 50, 100}
}

// ErrUnknownColumn is returned when a column name does not match a sortable column.
var ErrUnknownColumn = errors.New("unknown sort column")

// ViewState is the user-controlled search, sort, and pagination configuration.
type ViewState struct {
	SearchTerm  string
	Sort        *SortSpec
	CurrentPage int
	PageSize    int
}

// DefaultViewState returns an empty search, page 1, page size 10, unsorted.
func DefaultViewState() ViewState {
	return ViewState{
		CurrentPage: DefaultPage,
		PageSize:    DefaultPageSize,
	}
}

// clone returns a copy that does not share the SortSpec pointer.
func (s ViewState) clone() ViewState {
	if s.Sort != nil {
		spec := *s.Sort
		s.Sort = &spec
	}
	return s
}

// normalize replaces zero or negative page values with defaults and drops a
// sort that does not name a known column and direction.
func (s ViewState) normalize() ViewState {
	if s.CurrentPage < 1 {
		s.CurrentPage = DefaultPage
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.Sort != nil {
		if !s.Sort.Column.Valid() || (s.Sort.Direction != Ascending && s.Sort.Direction != Descending) {
			s.Sort = nil
		}
	}
	return s
}

// sortConfigJSON mirrors the persisted sort shape, where an unsorted list is
// stored as {"column": null, "direction": null}.
type sortConfigJSON struct {
	Column    *string `json:"column"    yaml:"column"`
	Direction *string `json:"direction" yaml:"direction"`
}

// viewStateJSON is the persisted snapshot of a ViewState.
type viewStateJSON struct {
	SearchTerm  string          `json:"searchTerm"  yaml:"searchTerm"`
	CurrentPage int             `json:"currentPage" yaml:"currentPage"`
	PageSize    int             `json:"pageSize"    yaml:"pageSize"`
	SortConfig  *sortConfigJSON `json:"sortConfig"  yaml:"sortConfig"`
}

// MarshalJSON encodes the snapshot stored under the view-state key.
func (s ViewState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.snapshot())
}

// MarshalYAML renders the same shape as MarshalJSON.
func (s ViewState) MarshalYAML() (any, error) {
	return s.snapshot(), nil
}

func (s ViewState) snapshot() viewStateJSON {
	out := viewStateJSON{
		SearchTerm:  s.SearchTerm,
		CurrentPage: s.CurrentPage,
		PageSize:    s.PageSize,
		SortConfig:  &sortConfigJSON{},
	}
	if s.Sort != nil {
		column := string(s.Sort.Column)
		direction := string(s.Sort.Direction)
		out.SortConfig.Column = &column
		out.SortConfig.Direction = &direction
	}
	return out
}

// UnmarshalJSON decodes a persisted snapshot. Missing or zero fields take
// their defaults; an unknown column or direction leaves the list unsorted.
func (s *ViewState) UnmarshalJSON(data []byte) error {
	if s == nil {
		return errors.New("cannot unmarshal into nil ViewState")
	}

	var in viewStateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	state := ViewState{
		SearchTerm:  in.SearchTerm,
		CurrentPage: in.CurrentPage,
		PageSize:    in.PageSize,
	}
	if in.SortConfig != nil && in.SortConfig.Column != nil && in.SortConfig.Direction != nil {
		state.Sort = &SortSpec{
			Column:    SortColumn(*in.SortConfig.Column),
			Direction: SortDirection(*in.SortConfig.Direction),
		}
	}

	*s = state.normalize()
	return nil
}

// ParseViewState decodes a persisted snapshot.
func ParseViewState(data []byte) (ViewState, error) {
	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return DefaultViewState(), fmt.Errorf("parsing view state: %w", err)
	}
	return state, nil
}
