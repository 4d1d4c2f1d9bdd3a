package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/commentdash/internal/engine"
)

func makeComments(n int) []engine.Comment {
	out := make([]engine.Comment, n)
	for i := range out {
		out[i] = engine.Comment{
			ID:     i + 1,
			PostID: i/5 + 1,
			Name:   fmt.Sprintf("comment %03d", i+1),
			Email:  fmt.Sprintf("user%03d@example.com", i+1),
			Body:   "body",
		}
	}
	return out
}

func changedSet(names ...string) ChangedFunc {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestListParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  ListParams
		wantErr error
	}{
		{name: "zero value", params: ListParams{}},
		{name: "valid page mode", params: ListParams{Page: 2, PageSize: 50, Sort: "name:desc"}},
		{name: "non-standard page size", params: ListParams{PageSize: 7}},
		{name: "negative page", params: ListParams{Page: -1}, wantErr: ErrInvalidPage},
		{name: "negative page size", params: ListParams{PageSize: -5}, wantErr: ErrInvalidPageSize},
		{name: "bad sort order", params: ListParams{Sort: "name:up"}, wantErr: ErrInvalidSortOrder},
		{name: "unknown column", params: ListParams{Sort: "body"}, wantErr: engine.ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *engine.SortSpec
		wantErr error
	}{
		{name: "empty", input: ""},
		{name: "none", input: "None"},
		{
			name:  "column only defaults to ascending",
			input: "name",
			want:  &engine.SortSpec{Column: engine.ColumnName, Direction: engine.Ascending},
		},
		{
			name:  "post id descending",
			input: "postId:desc",
			want:  &engine.SortSpec{Column: engine.ColumnPostID, Direction: engine.Descending},
		},
		{
			name:  "whitespace and case",
			input: "  Email : ASC ",
			want:  &engine.SortSpec{Column: engine.ColumnEmail, Direction: engine.Ascending},
		},
		{name: "too many parts", input: "name:asc:extra", wantErr: ErrInvalidSortFormat},
		{name: "empty field", input: ":desc", wantErr: ErrEmptySortField},
		{name: "invalid order", input: "email:sideways", wantErr: ErrInvalidSortOrder},
		{name: "unknown column", input: "body:asc", wantErr: engine.ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSort_RoundTrip(t *testing.T) {
	for _, column := range engine.Columns() {
		for _, dir := range []engine.SortDirection{engine.Ascending, engine.Descending} {
			spec := &engine.SortSpec{Column: column, Direction: dir}
			parsed, err := ParseSort(FormatSort(spec))
			require.NoError(t, err)
			assert.Equal(t, spec, parsed)
		}
	}
	assert.Equal(t, SortNone, FormatSort(nil))
}

func TestListParams_ApplyTo(t *testing.T) {
	t.Run("only changed flags apply", func(t *testing.T) {
		state := engine.DefaultViewState()
		state.SearchTerm = "comment 1"
		lv := engine.NewListView(makeComments(205), state)

		p := ListParams{Sort: "name:desc"}
		require.NoError(t, p.ApplyTo(lv, changedSet(FlagSort)))

		got := lv.State()
		assert.Equal(t, "comment 1", got.SearchTerm)
		require.NotNil(t, got.Sort)
		assert.Equal(t, engine.ColumnName, got.Sort.Column)
		assert.Equal(t, engine.Descending, got.Sort.Direction)
	})

	t.Run("page applies after page size", func(t *testing.T) {
		lv := engine.NewListView(makeComments(205), engine.DefaultViewState())

		p := ListParams{Page: 3, PageSize: 50}
		require.NoError(t, p.ApplyTo(lv, changedSet(FlagPage, FlagPageSize)))

		view := lv.View()
		assert.Equal(t, 3, view.CurrentPage)
		assert.Equal(t, 50, view.PageSize)
		assert.Equal(t, 101, view.Range.Start)
		assert.Equal(t, 150, view.Range.End)
	})

	t.Run("search resets page", func(t *testing.T) {
		state := engine.DefaultViewState()
		state.CurrentPage = 4
		lv := engine.NewListView(makeComments(205), state)

		p := ListParams{Search: "comment"}
		require.NoError(t, p.ApplyTo(lv, changedSet(FlagSearch)))
		assert.Equal(t, 1, lv.State().CurrentPage)
	})

	t.Run("page out of range", func(t *testing.T) {
		lv := engine.NewListView(makeComments(25), engine.DefaultViewState())

		p := ListParams{Page: 9}
		err := p.ApplyTo(lv, changedSet(FlagPage))
		require.ErrorIs(t, err, ErrPageOutOfRange)
		assert.Equal(t, 1, lv.State().CurrentPage)
	})

	t.Run("sort none clears", func(t *testing.T) {
		state := engine.DefaultViewState()
		state.Sort = &engine.SortSpec{Column: engine.ColumnEmail, Direction: engine.Ascending}
		lv := engine.NewListView(makeComments(10), state)

		p := ListParams{Sort: "none"}
		require.NoError(t, p.ApplyTo(lv, changedSet(FlagSort)))
		assert.Nil(t, lv.State().Sort)
	})
}

func TestNewPaginationMeta(t *testing.T) {
	state := engine.DefaultViewState()
	state.CurrentPage = 5
	state.Sort = &engine.SortSpec{Column: engine.ColumnPostID, Direction: engine.Descending}
	lv := engine.NewListView(makeComments(100), state)

	meta := NewPaginationMeta(lv.View())

	assert.Equal(t, 5, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 10, meta.TotalPages)
	assert.Equal(t, 100, meta.TotalItems)
	assert.Equal(t, 41, meta.StartItem)
	assert.Equal(t, 50, meta.EndItem)
	assert.False(t, meta.Empty)
	assert.True(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, meta.Pages)
	assert.Equal(t, "postId:desc", meta.Sort)
}

func TestNewPaginationMeta_Empty(t *testing.T) {
	state := engine.DefaultViewState()
	state.SearchTerm = "test"
	lv := engine.NewListView(makeComments(30), state)

	meta := NewPaginationMeta(lv.View())

	assert.True(t, meta.Empty)
	assert.Zero(t, meta.TotalItems)
	assert.Zero(t, meta.StartItem)
	assert.Zero(t, meta.EndItem)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasPrevious)
	assert.False(t, meta.HasNext)
	assert.Equal(t, "test", meta.Search)
	assert.Equal(t, SortNone, meta.Sort)
}
