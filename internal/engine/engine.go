package engine

// DerivedView is the page of comments shown at one moment, computed from the
// record set and the ViewState. It is never mutated in place.
type DerivedView struct {
	// Records holds the comments of the current page.
	Records []Comment

	// Range is the 1-based item range of the page, or an empty marker.
	Range DisplayRange

	// Pages is the compact page window for the pagination bar.
	Pages []PageLabel

	CurrentPage   int
	TotalPages    int
	PageSize      int
	FilteredCount int
	TotalCount    int
	SearchTerm    string
	Sort          *SortSpec
}

// IsEmpty reports whether no comment matched the search.
func (v DerivedView) IsEmpty() bool {
	return v.FilteredCount == 0
}

// HasPrevious reports whether a previous page exists.
func (v DerivedView) HasPrevious() bool {
	return v.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (v DerivedView) HasNext() bool {
	return v.CurrentPage < v.TotalPages
}

// ListView owns the full record set and the ViewState, and derives the
// filtered, sorted, and paginated view on demand.
//
// ListView is not safe for concurrent use; mutations are expected to arrive
// one at a time from a single event loop.
type ListView struct {
	records []Comment
	state   ViewState

	// filtered caches the filtered and sorted records; nil means stale.
	filtered []Comment
}

// NewListView creates a ListView over records with the given initial state.
// Zero or negative page values take their defaults, and a current page beyond
// the last page is clamped to it.
func NewListView(records []Comment, state ViewState) *ListView {
	lv := &ListView{
		records: records,
		state:   state.clone().normalize(),
	}
	lv.clampPage()
	return lv
}

// SetRecords replaces the record set and clamps the current page.
func (lv *ListView) SetRecords(records []Comment) {
	lv.records = records
	lv.invalidate()
	lv.clampPage()
}

// Records returns the full, unfiltered record set.
func (lv *ListView) Records() []Comment {
	return lv.records
}

// State returns a copy of the current ViewState.
func (lv *ListView) State() ViewState {
	return lv.state.clone()
}

// SetSearchTerm sets the search term and returns to page 1.
func (lv *ListView) SetSearchTerm(term string) {
	lv.state.SearchTerm = term
	lv.state.CurrentPage = DefaultPage
	lv.invalidate()
}

// SetSort advances column through its Unsorted, Ascending, Descending cycle.
// Selecting a different column starts that column at Ascending. The current
// page is not changed.
func (lv *ListView) SetSort(column SortColumn) {
	if !column.Valid() {
		return
	}
	lv.state.Sort = NextSort(lv.state.Sort, column)
	lv.invalidate()
}

// SortBy replaces the active sort without cycling. A nil spec clears it.
// The current page is not changed.
func (lv *ListView) SortBy(spec *SortSpec) {
	if spec != nil {
		cp := *spec
		spec = &cp
	}
	lv.state.Sort = spec
	lv.state = lv.state.normalize()
	lv.invalidate()
}

// SortDirection returns the direction column is sorted in, or DirectionNone.
func (lv *ListView) SortDirection(column SortColumn) SortDirection {
	if lv.state.Sort == nil || lv.state.Sort.Column != column {
		return DirectionNone
	}
	return lv.state.Sort.Direction
}

// SetPage moves to page. Pages outside [1, TotalPages] are ignored, and the
// return value reports whether the page changed.
func (lv *ListView) SetPage(page int) bool {
	if page < 1 || page > lv.TotalPages() {
		return false
	}
	changed := page != lv.state.CurrentPage
	lv.state.CurrentPage = page
	return changed
}

// NextPage moves forward one page if there is one.
func (lv *ListView) NextPage() bool {
	return lv.SetPage(lv.state.CurrentPage + 1)
}

// PreviousPage moves back one page if there is one.
func (lv *ListView) PreviousPage() bool {
	return lv.SetPage(lv.state.CurrentPage - 1)
}

// SetPageSize sets the page size and returns to page 1. Any positive size is
// accepted; non-positive sizes are ignored.
func (lv *ListView) SetPageSize(size int) {
	if size < 1 {
		return
	}
	lv.state.PageSize = size
	lv.state.CurrentPage = DefaultPage
}

// FilteredCount returns the number of comments matching the search term.
func (lv *ListView) FilteredCount() int {
	return len(lv.derive())
}

// TotalPages returns max(1, ceil(FilteredCount/PageSize)).
func (lv *ListView) TotalPages() int {
	return TotalPages(lv.FilteredCount(), lv.state.PageSize)
}

// View computes the current DerivedView.
func (lv *ListView) View() DerivedView {
	filtered := lv.derive()
	totalPages := TotalPages(len(filtered), lv.state.PageSize)
	page := pageSlice(filtered, lv.state.CurrentPage, lv.state.PageSize)

	records := make([]Comment, len(page))
	copy(records, page)

	return DerivedView{
		Records:       records,
		Range:         NewDisplayRange(lv.state.CurrentPage, lv.state.PageSize, len(filtered)),
		Pages:         PageWindow(lv.state.CurrentPage, totalPages),
		CurrentPage:   lv.state.CurrentPage,
		TotalPages:    totalPages,
		PageSize:      lv.state.PageSize,
		FilteredCount: len(filtered),
		TotalCount:    len(lv.records),
		SearchTerm:    lv.state.SearchTerm,
		Sort:          lv.state.clone().Sort,
	}
}

// derive returns the filtered and sorted records, recomputing them if the
// search term, sort, or record set changed.
func (lv *ListView) derive() []Comment {
	if lv.filtered == nil {
		lv.filtered = ApplySort(ApplyFilter(lv.records, lv.state.SearchTerm), lv.state.Sort)
	}
	return lv.filtered
}

func (lv *ListView) invalidate() {
	lv.filtered = nil
}

// clampPage keeps CurrentPage within [1, TotalPages].
func (lv *ListView) clampPage() {
	if lv.state.CurrentPage < 1 {
		lv.state.CurrentPage = DefaultPage
	}
	if total := lv.TotalPages(); lv.state.CurrentPage > total {
		lv.state.CurrentPage = total
	}
}
