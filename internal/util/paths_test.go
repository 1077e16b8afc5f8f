package util

import (
	"testing"

	"github.com/spf13/afero"
)

func TestFindRepoRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/home/dev/docs-repo/rules", 0o750); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	if err := fs.MkdirAll("/home/dev/docs-repo/skills/workflow", 0o750); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	tests := map[string]struct {
		start string
		want  string
	}{
		"at the root":       {start: "/home/dev/docs-repo", want: "/home/dev/docs-repo"},
		"below the root":    {start: "/home/dev/docs-repo/skills/workflow", want: "/home/dev/docs-repo"},
		"no marker in tree": {start: "/tmp", want: "/tmp"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FindRepoRoot(fs, tt.start); got != tt.want {
				t.Errorf("FindRepoRoot(%q) = %q, want %q", tt.start, got, tt.want)
			}
		})
	}
}
