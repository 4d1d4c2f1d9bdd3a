package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/logging"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/store"
)

// ErrNoSelection is returned when no comment is stored for the detail view
// and the fallback fetch could not supply one.
var ErrNoSelection = errors.New("no comment data available")

// Session owns the persistence side of one dashboard run. It is not safe for
// concurrent use.
type Session struct {
	store    store.Store
	source   source.DataSource
	defaults engine.ViewState

	// lastSaved is the most recently persisted snapshot; identical snapshots
	// are not written again.
	lastSaved []byte
}

// New creates a Session over st and ds.
func New(st store.Store, ds source.DataSource) *Session {
	return &Session{store: st, source: ds, defaults: engine.DefaultViewState()}
}

// SetDefaultViewState changes the state used when nothing usable is
// persisted.
func (s *Session) SetDefaultViewState(state engine.ViewState) {
	s.defaults = state
}

// Store returns the backing store.
func (s *Session) Store() store.Store {
	return s.store
}

// Source returns the data source.
func (s *Session) Source() source.DataSource {
	return s.source
}

// RestoreViewState loads the persisted ViewState. A missing snapshot yields
// the session defaults. An unreadable or malformed snapshot also yields the
// defaults and is logged rather than returned.
func (s *Session) RestoreViewState(ctx context.Context) engine.ViewState {
	log := logging.FromContext(ctx)

	blob, ok, err := s.store.Load(ctx, store.KeyViewState)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("could not read persisted view state, using defaults")
		return s.defaults
	}
	if !ok {
		return s.defaults
	}

	state, err := engine.ParseViewState(blob)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("persisted view state is malformed, using defaults")
		return s.defaults
	}

	s.lastSaved = bytes.Clone(blob)
	log.Debug().
		Ctx(ctx).
		Str("search", state.SearchTerm).
		Int("page", state.CurrentPage).
		Int("page_size", state.PageSize).
		Msg("view state restored")
	return state
}

// SaveViewState persists state unless it equals the last saved snapshot.
func (s *Session) SaveViewState(ctx context.Context, state engine.ViewState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	if s.lastSaved != nil && bytes.Equal(blob, s.lastSaved) {
		return nil
	}

	if saveErr := s.store.Save(ctx, store.KeyViewState, blob); saveErr != nil {
		return fmt.Errorf("saving view state: %w", saveErr)
	}
	s.lastSaved = blob
	return nil
}

// Persist saves the current state of lv. It is called after every mutation.
func (s *Session) Persist(ctx context.Context, lv *engine.ListView) error {
	return s.SaveViewState(ctx, lv.State())
}

// Load fetches all records, restores the ViewState, and returns the list view
// over them together with the fetched data. Either fetch failing is terminal.
func (s *Session) Load(ctx context.Context) (*engine.ListView, *source.Data, error) {
	state := s.RestoreViewState(ctx)

	data, err := source.LoadAll(ctx, s.source)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewListView(data.Comments, state), data, nil
}

// Select stores c as the comment handed to the detail view.
func (s *Session) Select(ctx context.Context, c engine.Comment) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding selected comment: %w", err)
	}
	if saveErr := s.store.Save(ctx, store.KeySelectedComment, blob); saveErr != nil {
		return fmt.Errorf("saving selected comment: %w", saveErr)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).Int("comment_id", c.ID).Msg("comment selected")
	return nil
}

// StoredSelection returns the stored selection without any fallback. The
// boolean is false when nothing usable is stored.
func (s *Session) StoredSelection(ctx context.Context) (engine.Comment, bool, error) {
	blob, ok, err := s.store.Load(ctx, store.KeySelectedComment)
	if err != nil || !ok {
		return engine.Comment{}, false, err
	}

	var c engine.Comment
	if unmarshalErr := json.Unmarshal(blob, &c); unmarshalErr != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).Err(unmarshalErr).Msg("stored selection is malformed")
		return engine.Comment{}, false, nil
	}
	return c, true, nil
}

// SelectedComment returns the comment for the detail view: the stored
// selection, or else the first fetched comment. ErrNoSelection is returned
// when neither is available.
func (s *Session) SelectedComment(ctx context.Context) (engine.Comment, error) {
	log := logging.FromContext(ctx)

	c, ok, err := s.StoredSelection(ctx)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("could not read stored selection")
	}
	if ok {
		return c, nil
	}

	if s.source == nil {
		return engine.Comment{}, ErrNoSelection
	}
	comments, fetchErr := s.source.FetchComments(ctx)
	if fetchErr != nil {
		log.Error().Ctx(ctx).Err(fetchErr).Msg("fallback fetch for detail view failed")
		return engine.Comment{}, fmt.Errorf("%w: %w", ErrNoSelection, fetchErr)
	}
	if len(comments) == 0 {
		return engine.Comment{}, ErrNoSelection
	}
	return comments[0], nil
}

// Reset removes the persisted ViewState and selection.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, store.KeyViewState); err != nil {
		return fmt.Errorf("clearing view state: %w", err)
	}
	if err := s.store.Delete(ctx, store.KeySelectedComment); err != nil {
		return fmt.Errorf("clearing selection: %w", err)
	}
	s.lastSaved = nil
	return nil
}
