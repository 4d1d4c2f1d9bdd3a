package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/cli/pagination"
	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/logging"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/tui"
)

// ListResult is the structured output of the list command.
type ListResult struct {
	User       *engine.User              `json:"user,omitempty" yaml:"user,omitempty"`
	Comments   []engine.Comment          `json:"comments"       yaml:"comments"`
	Pagination pagination.PaginationMeta `json:"pagination"     yaml:"pagination"`
}

// listOptions are the list command's own flags.
type listOptions struct {
	params      pagination.ListParams
	output      string
	save        bool
	ignoreState bool
}

// NewListCmd creates the list command, which prints one page of comments.
// The page starts from the persisted view state; flags override it.
func NewListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of comments",
		Long: `Fetches comments and users, applies the persisted view state, then applies
--search, --sort, --page-size, and --page in that order, and prints the page.

--save writes the resulting view state back so the dashboard opens on it.`,
		Example: `  # First page with the persisted search and sort
  commentdash list

  # Search, sort by name descending, second page of 50
  commentdash list --search "et" --sort name:desc --page-size 50 --page 2

  # Ignore persisted state and clear sorting
  commentdash list --ignore-state --sort none

  # JSON with pagination metadata
  commentdash list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	pagination.AddFlags(cmd, &opts.params)
	cmd.Flags().StringVarP(&opts.output, "output", "o", OutputTable, "output format: table, json, or yaml")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist the resulting view state")
	cmd.Flags().BoolVar(&opts.ignoreState, "ignore-state", false, "start from the default view state")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := parseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	if validateErr := opts.params.Validate(); validateErr != nil {
		return validateErr
	}

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var (
		lv   *engine.ListView
		data *source.Data
	)
	if opts.ignoreState {
		data, err = source.LoadAll(ctx, rt.source)
		if err == nil {
			lv = engine.NewListView(data.Comments, rt.cfg.DefaultViewState())
		}
	} else {
		lv, data, err = rt.session.Load(ctx)
	}
	if err != nil {
		return err
	}

	if applyErr := opts.params.ApplyTo(lv, cmd.Flags().Changed); applyErr != nil {
		return applyErr
	}

	if opts.save {
		if saveErr := rt.session.Persist(ctx, lv); saveErr != nil {
			return saveErr
		}
		log.Debug().Ctx(ctx).Msg("view state saved from list flags")
	}

	view := lv.View()
	if format != OutputTable {
		return writeStructured(cmd.OutOrStdout(), format, ListResult{
			User:       data.CurrentUser(),
			Comments:   view.Records,
			Pagination: pagination.NewPaginationMeta(view),
		})
	}
	return renderListTable(cmd.OutOrStdout(), view)
}

// renderListTable writes the page as an aligned table followed by the item
// range and the page window.
func renderListTable(w io.Writer, view engine.DerivedView) error {
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, tui.EmptyResultMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "POST ID\tID\tNAME\tEMAIL\tCOMMENT")
	for _, c := range view.Records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			c.PostID, c.ID, truncate(c.Name, bodyMaxWidth/2), c.Email, truncate(c.Body, bodyMaxWidth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s   Page %s   %d / Page   Sort: %s\n",
		tui.RenderSummary(view), formatPageWindow(view), view.PageSize, pagination.FormatSort(view.Sort))
	return err
}

// formatPageWindow renders the page window with the current page bracketed,
// e.g. "1 ... 4 [5] 6 ... 21".
func formatPageWindow(view engine.DerivedView) string {
	labels := make([]string, 0, len(view.Pages))
	for _, label := range view.Pages {
		if !label.Ellipsis && label.Page == view.CurrentPage {
			labels = append(labels, "["+label.String()+"]")
			continue
		}
		labels = append(labels, label.String())
	}
	return strings.Join(labels, " ")
}
