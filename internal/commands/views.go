package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ripplepay/ripple/internal/tracker"
)

func newResultCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "result",
		Short: "Show the ripple effect of the most recent expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			rec, err := ws.tracker.Latest(cmd.Context())
			if errors.Is(err, tracker.ErrNoExpenses) {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded yet.")
				return nil
			}
			if err != nil {
				return err
			}

			renderResult(cmd.OutOrStdout(), ws.currency(), ws.engine.Profile().SavingMultiplier, rec)
			return nil
		},
	}
}

func newDashboardCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show budget left and total ripple impact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			view, err := ws.tracker.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			renderDashboard(cmd.OutOrStdout(), ws.currency(), view)
			return nil
		},
	}
}

func newInsightsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show stress score, biggest ripple category and spending breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			summary, err := ws.tracker.Summary(cmd.Context())
			if err != nil {
				return err
			}

			renderInsights(cmd.OutOrStdout(), ws.currency(), summary)
			return nil
		},
	}
}

func newListCommand(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			recs, err := ws.tracker.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(recs) > limit {
				recs = recs[:limit]
			}

			renderList(cmd.OutOrStdout(), ws.currency(), recs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most n expenses (default: the snapshot size)")

	return cmd
}
