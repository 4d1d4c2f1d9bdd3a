package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/session"
	"github.com/rshade/commentdash/internal/tui/detail"
)

// ErrCommentNotFound is returned by show --id for an id that is not in the
// fetched comments.
var ErrCommentNotFound = errors.New("comment not found")

// NewShowCmd creates the show command, the non-interactive detail view.
func NewShowCmd() *cobra.Command {
	var (
		id     int
		output string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected comment",
		Long: `Shows the comment last opened in the dashboard. When nothing is selected,
the first comment of the fetched list is shown. --id selects a specific
comment and stores it as the selection.`,
		Example: `  # Show the selected comment
  commentdash show

  # Select and show comment 42 as JSON
  commentdash show --id 42 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			var c engine.Comment
			if cmd.Flags().Changed("id") {
				c, err = selectByID(cmd, rt, id)
			} else {
				c, err = rt.session.SelectedComment(cmd.Context())
			}
			if err != nil {
				if errors.Is(err, session.ErrNoSelection) {
					cmd.PrintErrln(detail.NoDataMessage)
				}
				return err
			}

			if format != OutputTable {
				return writeStructured(cmd.OutOrStdout(), format, c)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), detail.Render(c, terminalWidth()))
			return err
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "comment id to select and show")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json, or yaml")

	return cmd
}

// selectByID fetches the comments, finds id, and stores it as the selection.
func selectByID(cmd *cobra.Command, rt *runtime, id int) (engine.Comment, error) {
	ctx := cmd.Context()

	comments, err := rt.source.FetchComments(ctx)
	if err != nil {
		return engine.Comment{}, err
	}
	for _, c := range comments {
		if c.ID != id {
			continue
		}
		if selectErr := rt.session.Select(ctx, c); selectErr != nil {
			return engine.Comment{}, selectErr
		}
		return c, nil
	}
	return engine.Comment{}, &ExitError{Code: ExitUsage, Err: fmt.Errorf("%w: id %d", ErrCommentNotFound, id)}
}
