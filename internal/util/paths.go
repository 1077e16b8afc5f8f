package util

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// repoMarkers are the directory names whose presence identifies a
// documentation repository root.
var repoMarkers = []string{"rules", "skills", "agents"}

// FindRepoRoot walks upward from start looking for a directory that
// contains one of the documentation trees. It returns start when no
// marker is found, leaving the caller with an empty (but valid) scan.
func FindRepoRoot(fsys afero.Fs, start string) string {
	dir := start
	for {
		for _, marker := range repoMarkers {
			if ok, _ := afero.DirExists(fsys, filepath.Join(dir, marker)); ok {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
