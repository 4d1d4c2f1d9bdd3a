package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/store"
)

type fakeSource struct {
	comments []engine.Comment
	users    []engine.User
	err      error
	calls    int
}

func (f *fakeSource) FetchComments(context.Context) ([]engine.Comment, error) {
	f.calls++
	return f.comments, f.err
}

func (f *fakeSource) FetchUsers(context.Context) ([]engine.User, error) {
	return f.users, f.err
}

// countingStore records how often Save is called.
type countingStore struct {
	*store.MemoryStore
	saves int
}

func (c *countingStore) Save(ctx context.Context, key string, blob []byte) error {
	c.saves++
	return c.MemoryStore.Save(ctx, key, blob)
}

type brokenStore struct{ store.MemoryStore }

func (*brokenStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func makeComments(n int) []engine.Comment {
	out := make([]engine.Comment, n)
	for i := range out {
		out[i] = engine.Comment{
			ID:     i + 1,
			PostID: i/5 + 1,
			Name:   fmt.Sprintf("comment %03d", i+1),
			Email:  fmt.Sprintf("user%03d@example.com", i+1),
			Body:   fmt.Sprintf("body of comment %d", i+1),
		}
	}
	return out
}

func TestRestoreViewState_Missing(t *testing.T) {
	s := New(store.NewMemoryStore(), nil)
	assert.Equal(t, engine.DefaultViewState(), s.RestoreViewState(context.Background()))
}

func TestRestoreViewState_Malformed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, store.KeyViewState, []byte("{oops")))

	s := New(st, nil)
	assert.Equal(t, engine.DefaultViewState(), s.RestoreViewState(ctx))
}

func TestRestoreViewState_StoreError(t *testing.T) {
	s := New(&brokenStore{}, nil)
	assert.Equal(t, engine.DefaultViewState(), s.RestoreViewState(context.Background()))
}

func TestRestoreViewState_ConfiguredDefaults(t *testing.T) {
	s := New(store.NewMemoryStore(), nil)
	defaults := engine.DefaultViewState()
	defaults.PageSize = 50
	s.SetDefaultViewState(defaults)

	assert.Equal(t, 50, s.RestoreViewState(context.Background()).PageSize)
}

func TestRestoreViewState_StoredShape(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	blob := `{"searchTerm":"abc","currentPage":2,"pageSize":50,"sortConfig":{"column":"Name","direction":"desc"}}`
	require.NoError(t, st.Save(ctx, store.KeyViewState, []byte(blob)))

	got := New(st, nil).RestoreViewState(ctx)
	assert.Equal(t, "abc", got.SearchTerm)
	assert.Equal(t, 2, got.CurrentPage)
	assert.Equal(t, 50, got.PageSize)
	require.NotNil(t, got.Sort)
	assert.Equal(t, engine.ColumnName, got.Sort.Column)
	assert.Equal(t, engine.Descending, got.Sort.Direction)
}

func TestPersist_RoundTripReproducesView(t *testing.T) {
	ctx := context.Background()
	records := makeComments(205)
	st := store.NewMemoryStore()

	first := New(st, nil)
	lv := engine.NewListView(records, engine.DefaultViewState())
	lv.SetSearchTerm("comment")
	lv.SetPageSize(50)
	lv.SetPage(2)
	lv.SetSort(engine.ColumnName)
	lv.SetSort(engine.ColumnName)
	require.NoError(t, first.Persist(ctx, lv))

	second := New(st, nil)
	restored := engine.NewListView(records, second.RestoreViewState(ctx))

	assert.Equal(t, lv.State(), restored.State())
	assert.Equal(t, lv.View(), restored.View())
}

func TestSaveViewState_SkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	st := &countingStore{MemoryStore: store.NewMemoryStore()}
	s := New(st, nil)

	state := engine.DefaultViewState()
	require.NoError(t, s.SaveViewState(ctx, state))
	require.NoError(t, s.SaveViewState(ctx, state))
	assert.Equal(t, 1, st.saves)

	state.SearchTerm = "x"
	require.NoError(t, s.SaveViewState(ctx, state))
	assert.Equal(t, 2, st.saves)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	blob, err := json.Marshal(engine.ViewState{CurrentPage: 30, PageSize: 10})
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, store.KeyViewState, blob))

	src := &fakeSource{comments: makeComments(205), users: []engine.User{{ID: 1, Name: "Leanne Graham"}}}
	lv, data, err := New(st, src).Load(ctx)
	require.NoError(t, err)

	assert.Len(t, data.Comments, 205)
	assert.Equal(t, "Leanne Graham", data.CurrentUser().Name)
	assert.Equal(t, 21, lv.View().CurrentPage, "restored page beyond the last page is clamped")
}

func TestLoad_FetchFailure(t *testing.T) {
	src := &fakeSource{err: &source.FetchError{Endpoint: "x", StatusCode: 500}}
	lv, data, err := New(store.NewMemoryStore(), src).Load(context.Background())
	require.ErrorIs(t, err, source.ErrFetchFailed)
	assert.Nil(t, lv)
	assert.Nil(t, data)
}

func TestSelectedComment_StoredSelection(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{comments: makeComments(3)}
	s := New(store.NewMemoryStore(), src)

	want := engine.Comment{ID: 42, PostID: 9, Name: "n", Email: "e@x", Body: "b"}
	require.NoError(t, s.Select(ctx, want))

	got, err := s.SelectedComment(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Zero(t, src.calls, "stored selection must not trigger a fetch")
}

func TestSelectedComment_FallbackFetch(t *testing.T) {
	src := &fakeSource{comments: makeComments(3)}
	got, err := New(store.NewMemoryStore(), src).SelectedComment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, 1, src.calls)
}

func TestSelectedComment_MalformedSelectionFallsBack(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, store.KeySelectedComment, []byte("nope")))

	got, err := New(st, &fakeSource{comments: makeComments(2)}).SelectedComment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
}

func TestSelectedComment_NoData(t *testing.T) {
	ctx := context.Background()

	_, err := New(store.NewMemoryStore(), &fakeSource{err: errors.New("offline")}).SelectedComment(ctx)
	require.ErrorIs(t, err, ErrNoSelection)

	_, err = New(store.NewMemoryStore(), &fakeSource{}).SelectedComment(ctx)
	require.ErrorIs(t, err, ErrNoSelection)

	_, err = New(store.NewMemoryStore(), nil).SelectedComment(ctx)
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := New(st, nil)

	require.NoError(t, s.SaveViewState(ctx, engine.ViewState{SearchTerm: "abc", CurrentPage: 1, PageSize: 10}))
	require.NoError(t, s.Select(ctx, engine.Comment{ID: 1}))
	require.NoError(t, s.Reset(ctx))

	_, ok, err := st.Load(ctx, store.KeyViewState)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = st.Load(ctx, store.KeySelectedComment)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, engine.DefaultViewState(), s.RestoreViewState(ctx))
}
