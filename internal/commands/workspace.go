package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ripplepay/ripple/internal/activitylog"
	"github.com/ripplepay/ripple/internal/config"
	"github.com/ripplepay/ripple/internal/gitops"
	"github.com/ripplepay/ripple/internal/ledger"
	"github.com/ripplepay/ripple/internal/logger"
	"github.com/ripplepay/ripple/internal/metrics"
	"github.com/ripplepay/ripple/internal/storage"
	"github.com/ripplepay/ripple/internal/tracker"
)

// workspace is an opened data repository.
type workspace struct {
	root    string
	cfg     *config.Config
	engine  *metrics.Engine
	tracker *tracker.Tracker
	ledger  *ledger.Service // nil unless the csv backend is active
	close   func() error
}

// openWorkspace loads ripple.yaml from repoDir, applies environment
// overrides and opens the configured store.
func openWorkspace(repoDir string) (*workspace, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s (run `ripple init` first)", config.FileName, root)
		}
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	profile, err := cfg.MetricsProfile()
	if err != nil {
		return nil, err
	}
	engine, err := metrics.NewEngine(profile)
	if err != nil {
		return nil, err
	}

	ws := &workspace{
		root:   root,
		cfg:    cfg,
		engine: engine,
		close:  func() error { return nil },
	}

	var store tracker.Store
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		path := cfg.Storage.SQLitePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		db, err := storage.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		store = db
		ws.close = db.Close
	default:
		ws.ledger = ledger.NewService(root)
		store = ws.ledger
	}

	ws.tracker = tracker.New(engine, store, tracker.WithLimit(cfg.Storage.SnapshotLimit))
	return ws, nil
}

// currency is the symbol views prefix amounts with.
func (ws *workspace) currency() string {
	return ws.cfg.Display.Currency
}

// commit stages and commits the repo when auto-commit is enabled, then
// appends entries to the activity log stamped with the new commit hash.
// The log rows themselves land in the following commit.
func (ws *workspace) commit(ctx context.Context, message string, entries []activitylog.Entry) (string, error) {
	log := logger.FromContext(ctx)

	var hash string
	if ws.cfg.Git.AutoCommit && gitops.IsRepo(ws.root) {
		changed, err := gitops.HasChanges(ws.root)
		if err != nil {
			return "", err
		}
		if changed {
			hash, err = gitops.CommitAll(ws.root, message, ws.cfg.Git.AuthorName, ws.cfg.Git.AuthorEmail)
			if err != nil {
				return "", fmt.Errorf("committing: %w", err)
			}
			log.Debug().Str("commit", hash).Str("message", message).Msg("committed")
		}
	}

	for i := range entries {
		entries[i].CommitHash = hash
	}
	if err := activitylog.Append(ws.root, entries); err != nil {
		log.Warn().Err(err).Msg("failed to write activity log")
	}
	return hash, nil
}
