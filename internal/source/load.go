package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/logging"
)

// Data is the result of a complete load.
type Data struct {
	Comments []engine.Comment
	Users    []engine.User
}

// CurrentUser returns the first user, shown as the signed-in user, or nil.
func (d *Data) CurrentUser() *engine.User {
	if d == nil || len(d.Users) == 0 {
		return nil
	}
	u := d.Users[0]
	return &u
}

// LoadAll fetches comments and users in parallel and returns once both have
// completed. If either fetch fails, the other is cancelled and the first
// error is returned; no partial Data is produced.
func LoadAll(ctx context.Context, ds DataSource) (*Data, error) {
	var data Data

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := ds.FetchComments(gCtx)
		if err != nil {
			return err
		}
		data.Comments = comments
		return nil
	})
	g.Go(func() error {
		users, err := ds.FetchUsers(gCtx)
		if err != nil {
			return err
		}
		data.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Int("comments", len(data.Comments)).
		Int("users", len(data.Users)).
		Msg("data loaded")
	return &data, nil
}
