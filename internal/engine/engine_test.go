package engine

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeComments builds n comments with ids 1..n spread over posts of five.
func makeComments(n int) []Comment {
	comments := make([]Comment, n)
	for i := range comments {
		id := i + 1
		comments[i] = Comment{
			ID:     id,
			PostID: (i / 5) + 1,
			Name:   fmt.Sprintf("comment %03d", id),
			Email:  fmt.Sprintf("user%03d@example.com", id),
			Body:   fmt.Sprintf("body of comment %d", id),
		}
	}
	return comments
}

func ids(comments []Comment) []int {
	out := make([]int, len(comments))
	for i, c := range comments {
		out[i] = c.ID
	}
	return out
}

func labels(window []PageLabel) []string {
	out := make([]string, len(window))
	for i, l := range window {
		out[i] = l.String()
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	comments := []Comment{
		{ID: 1, Name: "Alpha", Email: "a@x.io", Body: "first"},
		{ID: 2, Name: "beta", Email: "B@Y.io", Body: "Second"},
		{ID: 3, Name: "gamma", Email: "g@x.io", Body: "has ALPHA inside"},
	}

	tests := []struct {
		name string
		term string
		want []int
	}{
		{name: "empty term matches all in order", term: "", want: []int{1, 2, 3}},
		{name: "name match is case-insensitive", term: "ALPHA", want: []int{1, 3}},
		{name: "email match", term: "b@y", want: []int{2}},
		{name: "body match", term: "second", want: []int{2}},
		{name: "no match", term: "test", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(comments, tt.term)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyFilter_DoesNotModifyInput(t *testing.T) {
	comments := makeComments(3)
	original := make([]Comment, len(comments))
	copy(original, comments)

	filtered := ApplyFilter(comments, "")
	filtered[0].Name = "changed"

	assert.Equal(t, original, comments)
}

func TestApplySort(t *testing.T) {
	comments := []Comment{
		{ID: 1, PostID: 2, Name: "bob", Email: "b@x.io"},
		{ID: 2, PostID: 1, Name: "Alice", Email: "C@x.io"},
		{ID: 3, PostID: 10, Name: "carol", Email: "a@x.io"},
	}

	tests := []struct {
		name string
		spec *SortSpec
		want []int
	}{
		{name: "nil spec keeps order", spec: nil, want: []int{1, 2, 3}},
		{name: "post id ascending is numeric", spec: &SortSpec{ColumnPostID, Ascending}, want: []int{2, 1, 3}},
		{name: "post id descending", spec: &SortSpec{ColumnPostID, Descending}, want: []int{3, 1, 2}},
		{name: "name ignores case", spec: &SortSpec{ColumnName, Ascending}, want: []int{2, 1, 3}},
		{name: "email descending ignores case", spec: &SortSpec{ColumnEmail, Descending}, want: []int{2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySort(comments, tt.spec)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplySort_Stable(t *testing.T) {
	comments := []Comment{
		{ID: 1, PostID: 1, Name: "same"},
		{ID: 2, PostID: 2, Name: "Same"},
		{ID: 3, PostID: 1, Name: "other"},
		{ID: 4, PostID: 2, Name: "SAME"},
	}

	t.Run("ascending ties keep input order", func(t *testing.T) {
		got := ApplySort(comments, &SortSpec{ColumnName, Ascending})
		assert.Equal(t, []int{3, 1, 2, 4}, ids(got))
	})

	t.Run("descending reverses keys but not ties", func(t *testing.T) {
		got := ApplySort(comments, &SortSpec{ColumnName, Descending})
		assert.Equal(t, []int{1, 2, 4, 3}, ids(got))
	})

	t.Run("numeric ties", func(t *testing.T) {
		got := ApplySort(comments, &SortSpec{ColumnPostID, Descending})
		assert.Equal(t, []int{2, 4, 1, 3}, ids(got))
	})
}

func TestNextSort_ThreeStateCycle(t *testing.T) {
	var spec *SortSpec

	spec = NextSort(spec, ColumnName)
	require.NotNil(t, spec)
	assert.Equal(t, SortSpec{ColumnName, Ascending}, *spec)

	spec = NextSort(spec, ColumnName)
	require.NotNil(t, spec)
	assert.Equal(t, SortSpec{ColumnName, Descending}, *spec)

	spec = NextSort(spec, ColumnName)
	assert.Nil(t, spec)
}

func TestNextSort_OtherColumnStartsAscending(t *testing.T) {
	spec := &SortSpec{ColumnName, Descending}
	spec = NextSort(spec, ColumnEmail)
	require.NotNil(t, spec)
	assert.Equal(t, SortSpec{ColumnEmail, Ascending}, *spec)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current int
		total   int
		want    []string
	}{
		{current: 5, total: 10, want: []string{"1", "...", "4", "5", "6", "...", "10"}},
		{current: 1, total: 2, want: []string{"1", "2"}},
		{current: 1, total: 1, want: []string{"1"}},
		{current: 2, total: 3, want: []string{"1", "2", "3"}},
		{current: 1, total: 10, want: []string{"1", "2", "...", "10"}},
		{current: 3, total: 10, want: []string{"1", "2", "3", "4", "...", "10"}},
		{current: 4, total: 10, want: []string{"1", "...", "3", "4", "5", "...", "10"}},
		{current: 8, total: 10, want: []string{"1", "...", "7", "8", "9", "10"}},
		{current: 10, total: 10, want: []string{"1", "...", "9", "10"}},
		{current: 2, total: 4, want: []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.current, tt.total), func(t *testing.T) {
			window := PageWindow(tt.current, tt.total)
			assert.Equal(t, tt.want, labels(window))
			assert.LessOrEqual(t, len(window), 7)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 21, TotalPages(205, 10))
	assert.Equal(t, 20, TotalPages(200, 10))
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(5, 100))
}

func TestNewDisplayRange(t *testing.T) {
	assert.Equal(t, DisplayRange{Start: 21, End: 30, Total: 205}, NewDisplayRange(3, 10, 205))
	assert.Equal(t, DisplayRange{Start: 201, End: 205, Total: 205}, NewDisplayRange(21, 10, 205))
	assert.Equal(t, DisplayRange{Empty: true}, NewDisplayRange(1, 10, 0))
}

func TestListView_Scenario205Records(t *testing.T) {
	lv := NewListView(makeComments(205), DefaultViewState())

	assert.Equal(t, 21, lv.TotalPages())
	require.True(t, lv.SetPage(3))

	view := lv.View()
	assert.Equal(t, 3, view.CurrentPage)
	assert.Equal(t, 21, view.TotalPages)
	assert.Equal(t, DisplayRange{Start: 21, End: 30, Total: 205}, view.Range)
	assert.Equal(t, []int{21, 22, 23, 24, 25, 26, 27, 28, 29, 30}, ids(view.Records))
	assert.True(t, view.HasPrevious())
	assert.True(t, view.HasNext())
}

func TestListView_EmptySearchResult(t *testing.T) {
	lv := NewListView(makeComments(20), DefaultViewState())
	lv.SetSearchTerm("test")

	view := lv.View()
	assert.True(t, view.IsEmpty())
	assert.Equal(t, 0, view.FilteredCount)
	assert.True(t, view.Range.Empty)
	assert.Zero(t, view.Range.Start)
	assert.Zero(t, view.Range.End)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, view.CurrentPage)
	assert.Empty(t, view.Records)
}

func TestListView_SetSearchTermResetsPage(t *testing.T) {
	lv := NewListView(makeComments(50), DefaultViewState())
	require.True(t, lv.SetPage(4))

	lv.SetSearchTerm("comment 01")
	assert.Equal(t, 1, lv.State().CurrentPage)
	assert.Equal(t, 10, lv.FilteredCount())
}

func TestListView_SetSortKeepsPage(t *testing.T) {
	lv := NewListView(makeComments(50), DefaultViewState())
	require.True(t, lv.SetPage(2))

	lv.SetSort(ColumnName)
	assert.Equal(t, 2, lv.State().CurrentPage)
	assert.Equal(t, Ascending, lv.SortDirection(ColumnName))
	assert.Equal(t, DirectionNone, lv.SortDirection(ColumnEmail))

	lv.SetSort(ColumnName)
	lv.SetSort(ColumnName)
	assert.Nil(t, lv.State().Sort)
	assert.Equal(t, DirectionNone, lv.SortDirection(ColumnName))
}

func TestListView_SetPageOutOfRangeIsNoop(t *testing.T) {
	lv := NewListView(makeComments(25), DefaultViewState())

	assert.False(t, lv.SetPage(0))
	assert.False(t, lv.SetPage(4))
	assert.False(t, lv.SetPage(-3))
	assert.Equal(t, 1, lv.State().CurrentPage)

	assert.True(t, lv.SetPage(3))
	assert.False(t, lv.NextPage())
	assert.Equal(t, 3, lv.State().CurrentPage)

	assert.True(t, lv.PreviousPage())
	assert.True(t, lv.PreviousPage())
	assert.False(t, lv.PreviousPage())
	assert.Equal(t, 1, lv.State().CurrentPage)
}

func TestListView_SetPageSizeResetsPage(t *testing.T) {
	lv := NewListView(makeComments(205), DefaultViewState())
	require.True(t, lv.SetPage(5))

	lv.SetPageSize(50)
	assert.Equal(t, 1, lv.State().CurrentPage)
	assert.Equal(t, 50, lv.State().PageSize)
	assert.Equal(t, 5, lv.TotalPages())

	// Sizes outside the offered options are accepted.
	lv.SetPageSize(7)
	assert.Equal(t, 7, lv.State().PageSize)

	lv.SetPageSize(0)
	assert.Equal(t, 7, lv.State().PageSize)
}

func TestListView_PageNeverOutOfBounds(t *testing.T) {
	lv := NewListView(makeComments(100), ViewState{CurrentPage: 40, PageSize: 10})
	assert.Equal(t, 10, lv.State().CurrentPage)

	lv.SetRecords(makeComments(15))
	assert.Equal(t, 2, lv.State().CurrentPage)

	lv.SetRecords(nil)
	view := lv.View()
	assert.Equal(t, 1, view.CurrentPage)
	assert.Equal(t, 1, view.TotalPages)
}

func TestListView_StateIsCopied(t *testing.T) {
	lv := NewListView(makeComments(10), DefaultViewState())
	lv.SetSort(ColumnEmail)

	state := lv.State()
	state.Sort.Direction = Descending

	assert.Equal(t, Ascending, lv.SortDirection(ColumnEmail))
}

func TestViewState_JSONRoundTrip(t *testing.T) {
	records := makeComments(205)
	records[10].Name = "ABC first"
	records[40].Body = "contains abc"
	records[77].Email = "abc@example.com"
	for i := 100; i < 160; i++ {
		records[i].Body = "abc filler"
	}

	lv := NewListView(records, DefaultViewState())
	lv.SetSearchTerm("abc")
	lv.SetPageSize(50)
	lv.SetSort(ColumnName)
	lv.SetSort(ColumnName)
	require.True(t, lv.SetPage(2))

	data, err := json.Marshal(lv.State())
	require.NoError(t, err)

	restored, err := ParseViewState(data)
	require.NoError(t, err)
	assert.Equal(t, lv.State(), restored)

	again := NewListView(records, restored)
	assert.Equal(t, lv.View(), again.View())
}

func TestViewState_JSONShape(t *testing.T) {
	data, err := json.Marshal(DefaultViewState())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"searchTerm":"","currentPage":1,"pageSize":10,"sortConfig":{"column":null,"direction":null}}`,
		string(data))

	state := ViewState{SearchTerm: "x", CurrentPage: 2, PageSize: 50, Sort: &SortSpec{ColumnPostID, Descending}}
	data, err = json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"searchTerm":"x","currentPage":2,"pageSize":50,"sortConfig":{"column":"Post ID","direction":"desc"}}`,
		string(data))
}

func TestParseViewState(t *testing.T) {
	t.Run("missing fields take defaults", func(t *testing.T) {
		state, err := ParseViewState([]byte(`{"searchTerm":"q"}`))
		require.NoError(t, err)
		assert.Equal(t, ViewState{SearchTerm: "q", CurrentPage: 1, PageSize: 10}, state)
	})

	t.Run("unknown column leaves list unsorted", func(t *testing.T) {
		state, err := ParseViewState([]byte(`{"sortConfig":{"column":"Body","direction":"asc"}}`))
		require.NoError(t, err)
		assert.Nil(t, state.Sort)
	})

	t.Run("malformed snapshot returns defaults and error", func(t *testing.T) {
		state, err := ParseViewState([]byte(`{not json`))
		require.Error(t, err)
		assert.Equal(t, DefaultViewState(), state)
	})
}

func TestParseColumn(t *testing.T) {
	for input, want := range map[string]SortColumn{
		"postId":  ColumnPostID,
		"Post ID": ColumnPostID,
		"NAME":    ColumnName,
		" email ": ColumnEmail,
	} {
		got, err := ParseColumn(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseColumn("body")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "LG", Initials("Leanne Graham"))
	assert.Equal(t, "EA", Initials("ervin alpha howell"))
	assert.Equal(t, "C", Initials("Clementine"))
	assert.Equal(t, "U", Initials(""))
	assert.Equal(t, "U", Initials("   "))
}
