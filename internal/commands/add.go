package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ripplepay/ripple/internal/activitylog"
	"github.com/ripplepay/ripple/internal/metrics"
	"github.com/ripplepay/ripple/internal/model"
)

func newAddCommand(root *rootOptions) *cobra.Command {
	var (
		amount   string
		category string
		mood     string
		reason   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense and show its ripple effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(root.repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			draft, err := buildDraft(amount, category, mood, reason)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rec, err := ws.tracker.Record(ctx, draft)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("add: %s %s %s", rec.ID, rec.Category, rec.Amount)
			hash, err := ws.commit(ctx, msg, []activitylog.Entry{{
				Timestamp: time.Now().UTC(),
				Action:    activitylog.ActionAdd,
				Details:   fmt.Sprintf("%s %s (ripple %d, delay %dd, stress %s)", rec.Category, rec.Amount, rec.RippleScore, rec.GoalDelay, rec.StressImpact),
				ExpenseID: rec.ID,
			}})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderResult(out, ws.currency(), ws.engine.Profile().SavingMultiplier, rec)
			if hash != "" {
				fmt.Fprintf(out, "\nSaved %s (%s)\n", rec.ID, hash)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "expense amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryFood), "expense category")
	cmd.Flags().StringVar(&mood, "mood", string(model.MoodHappy), "mood when spending (happy, neutral, stressed, overwhelmed)")
	cmd.Flags().StringVar(&reason, "reason", "", "why you spent it")

	return cmd
}

// buildDraft parses raw flag values. Unknown category and mood values are
// passed through so the engine reports every problem at once.
func buildDraft(amount, category, mood, reason string) (model.Draft, error) {
	amt, err := metrics.ParseAmount(amount)
	if err != nil {
		return model.Draft{}, fmt.Errorf("invalid amount: %w", err)
	}

	c, ok := model.ParseCategory(category)
	if !ok {
		c = model.Category(category)
	}
	m, ok := model.ParseMood(mood)
	if !ok {
		m = model.Mood(mood)
	}

	return model.Draft{
		Amount:   amt,
		Category: c,
		Mood:     m,
		Reason:   reason,
	}, nil
}
