// Package importer loads expense CSVs dropped into a data repository's
// import/ directory and tracks which of them have been recorded.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ripplepay/ripple/internal/model"
)

const (
	importDir    = "import"
	processedDir = "import/processed"
)

// ErrAlreadyImported is returned by Load when a pending file has the same
// name as one already in import/processed/.
var ErrAlreadyImported = errors.New("already imported")

// Batch is one pending import file and the expenses parsed from it.
type Batch struct {
	Name   string
	Path   string
	Drafts []model.Draft
}

// Pending returns the names of the CSV files waiting in <repoRoot>/import/,
// sorted. A missing import directory means nothing is pending.
func Pending(repoRoot string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(repoRoot, importDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load parses every pending file. It stops at the first file that cannot be
// imported, so callers see either every batch or none.
func Load(repoRoot string) ([]Batch, error) {
	names, err := Pending(repoRoot)
	if err != nil {
		return nil, err
	}

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(repoRoot, processedDir, name)); err == nil {
			return nil, fmt.Errorf("%s: %w (remove or rename it)", name, ErrAlreadyImported)
		}

		path := filepath.Join(repoRoot, importDir, name)
		drafts, err := parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		batches = append(batches, Batch{Name: name, Path: path, Drafts: drafts})
	}
	return batches, nil
}

func parseFile(path string) ([]model.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Archive moves a fully recorded batch into import/processed/.
func Archive(repoRoot string, b Batch) error {
	dstDir := filepath.Join(repoRoot, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(b.Path, filepath.Join(dstDir, b.Name)); err != nil {
		return fmt.Errorf("archiving %s: %w", b.Name, err)
	}
	return nil
}

// Requeue rewrites the batch file so it holds only remaining. A later import
// then resumes with the expenses that were not recorded.
func Requeue(b Batch, remaining []model.Draft) (err error) {
	f, err := os.Create(b.Path)
	if err != nil {
		return fmt.Errorf("requeueing %s: %w", b.Name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("requeueing %s: %w", b.Name, cerr)
		}
	}()

	if err := Write(f, remaining); err != nil {
		return fmt.Errorf("requeueing %s: %w", b.Name, err)
	}
	return nil
}
