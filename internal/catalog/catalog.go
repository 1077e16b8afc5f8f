// Package catalog ties discovery and rendering together and keeps the
// generated document in sync with its source tree.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"

	"github.com/catalogen/catalogen/internal/logging"
	"github.com/catalogen/catalogen/internal/render"
	"github.com/catalogen/catalogen/internal/scan"
)

// ErrMissing indicates the target document does not exist in check mode.
var ErrMissing = errors.New("catalog file does not exist")

// DriftError indicates the on-disk document no longer matches a fresh
// render. It carries a unified diff of the stale content against the
// fresh render for the user to inspect.
type DriftError struct {
	Path string
	Diff string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%s is out of date; run 'catalogen' and commit", e.Path)
}

// Options configures a catalog run.
type Options struct {
	// Fs is the filesystem to scan and write through.
	Fs afero.Fs
	// Root is the repository root containing the documentation trees.
	Root string
	// Output is the target document path. Empty means the default
	// docs/CATALOG.md under Root.
	Output string
}

// OutputPath returns the resolved target document path.
func (o Options) OutputPath() string {
	if o.Output != "" {
		return o.Output
	}
	return filepath.Join(o.Root, "docs", "CATALOG.md")
}

// Generate scans the documentation trees and renders the catalog. Any
// failure other than the documented per-file skips aborts: the document
// is all-or-nothing.
func Generate(opts Options) (string, error) {
	s := scan.New(opts.Fs, opts.Root)

	rules, err := s.Rules()
	if err != nil {
		return "", err
	}
	skills, err := s.Skills()
	if err != nil {
		return "", err
	}
	agents, err := s.Agents()
	if err != nil {
		return "", err
	}
	customSkills, err := s.CustomSkills()
	if err != nil {
		return "", err
	}
	customAgents, err := s.CustomAgents()
	if err != nil {
		return "", err
	}

	logging.Debug("discovery complete",
		logging.Section("rules"), logging.Count(len(rules)),
	)
	logging.Debug("discovery complete",
		logging.Section("skills"), logging.Count(skills.Total()),
	)
	logging.Debug("discovery complete",
		logging.Section("agents"), logging.Count(len(agents)),
	)

	return render.Catalog(render.Input{
		Rules:        rules,
		Skills:       skills,
		Agents:       agents,
		CustomSkills: customSkills,
		CustomAgents: customAgents,
	}), nil
}

// Write regenerates the catalog and overwrites the target document
// unconditionally. No partial writes, no backup: this is deterministic
// regeneration, not an incremental update.
func Write(opts Options) (string, error) {
	content, err := Generate(opts)
	if err != nil {
		return "", err
	}

	target := opts.OutputPath()
	if err := opts.Fs.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := afero.WriteFile(opts.Fs, target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", target, err)
	}
	return target, nil
}

// Check regenerates the catalog and compares it byte-for-byte with the
// existing target document. A missing target yields ErrMissing; any
// difference yields a DriftError.
func Check(opts Options) error {
	content, err := Generate(opts)
	if err != nil {
		return err
	}

	target := opts.OutputPath()
	existing, err := afero.ReadFile(opts.Fs, target)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissing, target)
		}
		return fmt.Errorf("failed to read %q: %w", target, err)
	}

	if string(existing) == content {
		return nil
	}

	rel := target
	if r, err := filepath.Rel(opts.Root, target); err == nil {
		rel = filepath.ToSlash(r)
	}
	return &DriftError{
		Path: rel,
		Diff: udiff.Unified(rel, rel+" (fresh)", string(existing), content),
	}
}
