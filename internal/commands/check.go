package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errCheckFailed is returned after integrity problems have been printed.
var errCheckFailed = errors.New("integrity check failed")

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify stored expenses: IDs, categories, moods and recomputed metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			if ws.ledger == nil {
				return fmt.Errorf("check supports the csv backend only (storage.backend is %q)", ws.cfg.Storage.Backend)
			}

			problems, err := ws.ledger.Check(ws.engine)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintln(out, "All expenses OK.")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, p.Error())
			}
			fmt.Fprintf(out, "%d problems found.\n", len(problems))
			return errCheckFailed
		},
	}
}
