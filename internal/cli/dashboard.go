package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/tui"
)

// NewDashboardCmd creates the dashboard command. The root command runs the
// same thing when no subcommand is given.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive comment dashboard",
		Long: `Opens the comment dashboard. The last search, sort, page, and page size
are restored and every change is saved as you go.

Keys:
  /        search (live, case-insensitive across name, email, and body)
  1 2 3    sort by Post ID, Name, Email (cycles asc, desc, off)
  ← →      previous and next page (also h/l and p/n)
  g        go to page
  z        cycle page size
  ↑ ↓      move the selection
  enter    open the selected comment
  esc      back to the list
  q        quit

When stdout is not a terminal the current page is printed as a table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}
}

// wantsInteractive reports whether cmd will take over the terminal, in which
// case console logging must stay off stderr.
func wantsInteractive(cmd *cobra.Command) bool {
	if cmd.HasParent() && cmd.Name() != "dashboard" {
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stdin)
}

func runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if !wantsInteractive(cmd) {
		lv, _, loadErr := rt.session.Load(ctx)
		if loadErr != nil {
			return loadErr
		}
		return renderListTable(cmd.OutOrStdout(), lv.View())
	}

	return runInteractiveDashboard(ctx, rt)
}

func runInteractiveDashboard(ctx context.Context, rt *runtime) error {
	model := tui.NewDashboardModel(ctx, rt.session, tui.DashboardOptions{
		PageSizeOptions: rt.cfg.View.PageSizeOptions,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if fetchErr := model.Err(); fetchErr != nil {
		return &ExitError{Code: ExitFetchFailed, Err: fetchErr}
	}
	return nil
}
