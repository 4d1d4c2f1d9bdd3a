package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/cli/pagination"
	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/store"
)

// StateReport is the structured output of state show. Nil fields were not
// persisted.
type StateReport struct {
	Backend         string            `json:"backend"                   yaml:"backend"`
	ViewState       *engine.ViewState `json:"dashboardFilters"          yaml:"dashboardFilters"`
	ViewStateError  string            `json:"dashboardFiltersError,omitempty" yaml:"dashboardFiltersError,omitempty"`
	SelectedComment *engine.Comment   `json:"selectedComment"           yaml:"selectedComment"`
}

// NewStateShowCmd creates the state show command.
func NewStateShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted view state and selection",
		Args:  cobra.NoArgs,
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

			report, err := readStateReport(cmd, rt)
			if err != nil {
				return err
			}

			if format != OutputTable {
				return writeStructured(cmd.OutOrStdout(), format, report)
			}
			return renderStateReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json, or yaml")
	return cmd
}

// NewStateResetCmd creates the state reset command.
func NewStateResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted view state and selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			if resetErr := rt.session.Reset(cmd.Context()); resetErr != nil {
				return resetErr
			}
			cmd.Println("Persisted view state and selection cleared")
			return nil
		},
	}
}

func readStateReport(cmd *cobra.Command, rt *runtime) (StateReport, error) {
	ctx := cmd.Context()
	report := StateReport{Backend: rt.cfg.Store.Backend}

	blob, ok, err := rt.store.Load(ctx, store.KeyViewState)
	if err != nil {
		return report, fmt.Errorf("reading view state: %w", err)
	}
	if ok {
		state, parseErr := engine.ParseViewState(blob)
		if parseErr != nil {
			report.ViewStateError = parseErr.Error()
		} else {
			report.ViewState = &state
		}
	}

	selected, ok, err := rt.session.StoredSelection(ctx)
	if err != nil {
		return report, fmt.Errorf("reading selection: %w", err)
	}
	if ok {
		report.SelectedComment = &selected
	}
	return report, nil
}

func renderStateReport(w io.Writer, r StateReport) error {
	var err error
	line := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format+"\n", args...)
		}
	}

	line("Backend:    %s", r.Backend)
	switch {
	case r.ViewStateError != "":
		line("View state: malformed, defaults will be used (%s)", r.ViewStateError)
	case r.ViewState == nil:
		line("View state: none, defaults will be used")
	default:
		search := r.ViewState.SearchTerm
		if search == "" {
			search = "(none)"
		}
		line("Search:     %s", search)
		line("Sort:       %s", pagination.FormatSort(r.ViewState.Sort))
		line("Page:       %d", r.ViewState.CurrentPage)
		line("Page size:  %d", r.ViewState.PageSize)
	}

	if r.SelectedComment == nil {
		line("Selected:   none")
	} else {
		line("Selected:   #%s %s <%s>",
			strconv.Itoa(r.SelectedComment.ID), r.SelectedComment.Name, r.SelectedComment.Email)
	}
	return err
}
