package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ripplepay/ripple/internal/buildinfo"
	"github.com/ripplepay/ripple/internal/logger"
)

type rootOptions struct {
	repoDir   string
	logLevel  string
	logFormat string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "ripple",
		Short:   "See how each expense ripples through your budget, goals and mood",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repoDir, "repo", ".", "data repository directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log output format (console, json)")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(opts),
		newResultCommand(opts),
		newDashboardCommand(opts),
		newInsightsCommand(opts),
		newListCommand(opts),
		newImportCommand(opts),
		newCheckCommand(opts),
	)

	return rootCmd
}

// setup loads <repo>/.env and puts a logger on the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	var log zerolog.Logger
	switch o.logFormat {
	case "console":
		log = logger.New(cmd.ErrOrStderr(), level)
	case "json":
		log = logger.NewJSON(cmd.ErrOrStderr(), level)
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", o.logFormat)
	}

	envPath := filepath.Join(o.repoDir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envPath, err)
	}

	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
