// Package scan discovers catalog entries by walking the documentation
// trees of a repository and parsing each file's metadata block.
//
// All traversal goes through an afero.Fs so scanners can be exercised
// against an in-memory filesystem in tests. Traversal order is
// lexicographic by path, which fixes both display order and the
// byte-for-byte determinism the check mode depends on.
package scan

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/catalogen/catalogen/internal/frontmatter"
	"github.com/catalogen/catalogen/internal/logging"
	"github.com/catalogen/catalogen/internal/model"
)

// Directory and file naming conventions of the documentation tree.
const (
	rulesDirName  = "rules"
	skillsDirName = "skills"
	agentsDirName = "agents"
	customDirName = "custom"

	skillFileName  = "SKILL.md"
	readmeFileName = "README.md"

	archiveDirName  = "_archive"
	referenceSuffix = "-reference"
)

// Scanner discovers catalog entries under a repository root.
type Scanner struct {
	fs   afero.Fs
	root string
}

// New creates a Scanner over the given filesystem and repository root.
func New(fs afero.Fs, root string) *Scanner {
	return &Scanner{fs: fs, root: root}
}

// Rules returns one entry per markdown file directly under rules/.
func (s *Scanner) Rules() ([]model.Entry, error) {
	dir := filepath.Join(s.root, rulesDirName)
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules directory %q: %w", dir, err)
	}

	var entries []model.Entry
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			continue
		}
		entry, ok, err := s.entryFor(filepath.Join(dir, info.Name()), rulesDirName)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Skills returns skill entries grouped by category. The category key is
// the path between the skills root and the skill's own directory, so
// skills/build/backend/api-design/SKILL.md lands under "build/backend".
func (s *Scanner) Skills() (model.SkillSet, error) {
	return s.skillSet(filepath.Join(s.root, skillsDirName))
}

// Agents returns agent entries with their category taken from the
// title-cased parent directory name. Archived agents, reference notes,
// and READMEs are excluded.
func (s *Scanner) Agents() ([]model.Entry, error) {
	dir := filepath.Join(s.root, agentsDirName)
	files, err := s.walkMarkdown(dir)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	for _, file := range files {
		if isArchived(s.root, file) || isReference(file) || filepath.Base(file) == readmeFileName {
			continue
		}
		entry, ok, err := s.entryFor(file, agentsDirName)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entry.Category = model.TitleCase(filepath.Base(filepath.Dir(file)))
		entries = append(entries, entry)
	}
	return entries, nil
}

// CustomSkills returns skill entries under custom/skills as a flat
// list, without category grouping. A missing custom tree yields zero
// entries, not an error.
func (s *Scanner) CustomSkills() ([]model.Entry, error) {
	dir := filepath.Join(s.root, customDirName, skillsDirName)
	files, err := s.walkMarkdown(dir)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	for _, file := range files {
		if filepath.Base(file) != skillFileName {
			continue
		}
		entry, ok, err := s.entryFor(file, customDirName)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// CustomAgents returns agent entries under custom/agents as a flat
// list, without category grouping. READMEs are excluded.
func (s *Scanner) CustomAgents() ([]model.Entry, error) {
	dir := filepath.Join(s.root, customDirName, agentsDirName)
	files, err := s.walkMarkdown(dir)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	for _, file := range files {
		if filepath.Base(file) == readmeFileName {
			continue
		}
		entry, ok, err := s.entryFor(file, customDirName)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// skillSet walks dir recursively for SKILL.md files and groups the
// resulting entries by path-derived category.
func (s *Scanner) skillSet(dir string) (model.SkillSet, error) {
	files, err := s.walkMarkdown(dir)
	if err != nil {
		return nil, err
	}

	set := make(model.SkillSet)
	for _, file := range files {
		if filepath.Base(file) != skillFileName {
			continue
		}
		entry, ok, err := s.entryFor(file, skillsDirName)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		set.Add(skillCategory(dir, file), entry)
	}
	return set, nil
}

// entryFor parses the metadata block of one file. ok is false when the
// file must be skipped (no block, or no name); each skip emits exactly
// one warning. Read failures are fatal.
func (s *Scanner) entryFor(file, section string) (model.Entry, bool, error) {
	content, err := afero.ReadFile(s.fs, file)
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("failed to read %q: %w", file, err)
	}

	md, ok := frontmatter.Extract(content)
	if !ok {
		logging.Warn("file has no metadata block, skipping",
			logging.Path(file),
			logging.Section(section),
		)
		return model.Entry{}, false, nil
	}
	if !md.HasName() {
		logging.Warn("metadata block is missing the name key, skipping",
			logging.Path(file),
			logging.Section(section),
		)
		return model.Entry{}, false, nil
	}

	rel, err := filepath.Rel(s.root, file)
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("failed to relativize %q: %w", file, err)
	}

	return model.Entry{
		Name:        md.Name,
		Description: frontmatter.CatalogDescription(md.Description),
		// Rendered relative to the output document's directory, which
		// sits one level below the repository root.
		Path: "../" + filepath.ToSlash(rel),
	}, true, nil
}

// walkMarkdown returns the markdown files under dir in lexicographic
// path order. A missing dir yields an empty result.
func (s *Scanner) walkMarkdown(dir string) ([]string, error) {
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
	}
	if !exists {
		return nil, nil
	}

	var files []string
	walkErr := afero.Walk(s.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, walkErr)
	}
	return files, nil
}

// skillCategory derives the category key from a SKILL.md path: the
// segments between the scan root and the skill's own directory.
func skillCategory(skillsRoot, file string) model.Category {
	rel, err := filepath.Rel(skillsRoot, file)
	if err != nil {
		return model.CategoryOther
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 3 {
		// The skill sits directly under the root with no category dirs.
		return model.CategoryOther
	}
	return model.ParseCategory(path.Join(parts[:len(parts)-2]...))
}

// isArchived reports whether the file sits under an archive directory.
func isArchived(root, file string) bool {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == archiveDirName {
			return true
		}
	}
	return false
}

// isReference reports whether the file is a reference note, named like
// tool-reference.md.
func isReference(file string) bool {
	stem := strings.TrimSuffix(filepath.Base(file), ".md")
	return strings.HasSuffix(stem, referenceSuffix)
}
