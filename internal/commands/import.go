package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ripplepay/ripple/internal/activitylog"
	"github.com/ripplepay/ripple/internal/importer"
	"github.com/ripplepay/ripple/internal/logger"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Record every expense CSV waiting in import/",
		Long: `Record every expense CSV waiting in import/.

Files use the columns date,amount,category,mood,reason. Every file is
checked before anything is recorded, so one bad row leaves all files
in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			return runImport(cmd.Context(), cmd.OutOrStdout(), ws)
		},
	}
}

func runImport(ctx context.Context, out io.Writer, ws *workspace) error {
	log := logger.FromContext(ctx)

	// 1. Parse every pending file.
	batches, err := importer.Load(ws.root)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	// 2. Stamp every expense under the active profile before storing any.
	for _, b := range batches {
		for i, d := range b.Drafts {
			if _, err := ws.engine.Stamp(d); err != nil {
				return fmt.Errorf("%s: expense %d: %w", b.Name, i+1, err)
			}
		}
	}

	// 3. Record and archive each batch.
	var (
		entries []activitylog.Entry
		total   int
	)
	for _, b := range batches {
		n, err := recordBatch(ctx, ws, b)
		total += n
		if err == nil {
			err = importer.Archive(ws.root, b)
		}
		if err != nil {
			// Keep what was stored and leave the rest queued for the next run.
			if rerr := importer.Requeue(b, b.Drafts[n:]); rerr != nil {
				log.Error().Err(rerr).Str("file", b.Name).Int("remaining", len(b.Drafts)-n).Msg("failed to requeue import")
			}
			if n > 0 {
				entries = append(entries, importEntry(fmt.Sprintf("%s: %d of %d expenses", b.Name, n, len(b.Drafts))))
			}
			if total > 0 {
				if _, cerr := ws.commit(ctx, fmt.Sprintf("import: %d expenses (interrupted)", total), entries); cerr != nil {
					log.Warn().Err(cerr).Msg("failed to commit partial import")
				}
			}
			return fmt.Errorf("%s: recorded %d of %d expenses: %w", b.Name, n, len(b.Drafts), err)
		}

		entries = append(entries, importEntry(fmt.Sprintf("%s: %d expenses", b.Name, n)))
		fmt.Fprintf(out, "Imported %d expenses from %s\n", n, b.Name)
	}

	hash, err := ws.commit(ctx, fmt.Sprintf("import: %d expenses from %d files", total, len(batches)), entries)
	if err != nil {
		return err
	}
	if hash != "" {
		fmt.Fprintf(out, "Committed %s\n", hash)
	}
	return nil
}

// recordBatch stores b's drafts in order and reports how many were stored.
func recordBatch(ctx context.Context, ws *workspace, b importer.Batch) (int, error) {
	log := logger.FromContext(ctx)
	for i, d := range b.Drafts {
		rec, err := ws.tracker.Record(ctx, d)
		if err != nil {
			return i, err
		}
		log.Debug().Str("file", b.Name).Str("expense_id", rec.ID).Msg("imported expense")
	}
	return len(b.Drafts), nil
}

func importEntry(details string) activitylog.Entry {
	return activitylog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    activitylog.ActionImport,
		Details:   details,
	}
}
