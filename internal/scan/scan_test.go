package scan

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/catalogen/catalogen/internal/logging"
	"github.com/catalogen/catalogen/internal/model"
	"github.com/catalogen/catalogen/internal/util"
)

const root = "/repo"

func newFixtureFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	util.WriteFile(t, fs, root+"/rules/code-style.md",
		"---\nname: code-style\ndescription: Keeps code tidy. Use when editing.\n---\nBody")
	util.WriteFile(t, fs, root+"/rules/no-metadata.md", "Just prose, no block.")
	util.WriteFile(t, fs, root+"/rules/unnamed.md",
		"---\ndescription: Block without a name.\n---\n")
	util.WriteFile(t, fs, root+"/rules/notes.txt", "not markdown")

	util.WriteFile(t, fs, root+"/skills/workflow/tdd/SKILL.md",
		"---\nname: tdd\ndescription: Red, green, refactor.\n---\n")
	util.WriteFile(t, fs, root+"/skills/build/backend/api-design/SKILL.md",
		"---\nname: api-design\ndescription: Designs APIs.\n---\n")
	util.WriteFile(t, fs, root+"/skills/experimental/fuzzing/SKILL.md",
		"---\nname: fuzzing\ndescription: Fuzzes inputs.\n---\n")
	util.WriteFile(t, fs, root+"/skills/workflow/tdd/references/extra.md", "reference material")

	util.WriteFile(t, fs, root+"/agents/review/code-reviewer.md",
		"---\nname: code-reviewer\ndescription: Reviews diffs.\n---\n")
	util.WriteFile(t, fs, root+"/agents/review/README.md",
		"---\nname: readme\ndescription: Should be excluded.\n---\n")
	util.WriteFile(t, fs, root+"/agents/review/tool-reference.md",
		"---\nname: ref\ndescription: Should be excluded.\n---\n")
	util.WriteFile(t, fs, root+"/agents/_archive/old-agent.md",
		"---\nname: old\ndescription: Should be excluded.\n---\n")

	return fs
}

func TestRules(t *testing.T) {
	s := New(newFixtureFs(t), root)

	rules, err := s.Rules()
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}

	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1: %+v", len(rules), rules)
	}
	util.AssertEqual(t, rules[0].Name, "code-style")
	util.AssertEqual(t, rules[0].Description, "Keeps code tidy.")
	util.AssertEqual(t, rules[0].Path, "../rules/code-style.md")
}

func TestRulesMissingDirectory(t *testing.T) {
	s := New(afero.NewMemMapFs(), root)

	rules, err := s.Rules()
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}

func TestRulesWarnsOncePerSkippedFile(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{
		Level:  slog.LevelWarn,
		Output: &buf,
	}))
	t.Cleanup(func() {
		logging.SetDefault(logging.New(logging.DefaultOptions()))
	})

	s := New(newFixtureFs(t), root)
	if _, err := s.Rules(); err != nil {
		t.Fatalf("Rules() error: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "no-metadata.md"); got != 1 {
		t.Errorf("no-metadata.md warned %d times, want 1\n%s", got, out)
	}
	if got := strings.Count(out, "unnamed.md"); got != 1 {
		t.Errorf("unnamed.md warned %d times, want 1\n%s", got, out)
	}
}

func TestSkills(t *testing.T) {
	s := New(newFixtureFs(t), root)

	skills, err := s.Skills()
	if err != nil {
		t.Fatalf("Skills() error: %v", err)
	}

	util.AssertEqual(t, skills.Total(), 3)

	workflow := skills[model.CategoryWorkflow]
	if len(workflow) != 1 {
		t.Fatalf("got %d workflow skills, want 1", len(workflow))
	}
	util.AssertEqual(t, workflow[0].Name, "tdd")
	util.AssertEqual(t, workflow[0].Path, "../skills/workflow/tdd/SKILL.md")

	backend := skills[model.CategoryBuildBackend]
	if len(backend) != 1 {
		t.Fatalf("got %d build/backend skills, want 1", len(backend))
	}
	util.AssertEqual(t, backend[0].Name, "api-design")

	experimental := skills[model.Category("experimental")]
	if len(experimental) != 1 {
		t.Fatalf("got %d experimental skills, want 1", len(experimental))
	}
	util.AssertEqual(t, experimental[0].Name, "fuzzing")
}

func TestSkillsUncategorized(t *testing.T) {
	fs := afero.NewMemMapFs()
	util.WriteFile(t, fs, root+"/skills/quickstart/SKILL.md",
		"---\nname: quickstart\ndescription: No category dirs.\n---\n")

	s := New(fs, root)
	skills, err := s.Skills()
	if err != nil {
		t.Fatalf("Skills() error: %v", err)
	}

	other := skills[model.CategoryOther]
	if len(other) != 1 {
		t.Fatalf("got %d uncategorized skills, want 1", len(other))
	}
	util.AssertEqual(t, other[0].Name, "quickstart")
}

func TestAgents(t *testing.T) {
	s := New(newFixtureFs(t), root)

	agents, err := s.Agents()
	if err != nil {
		t.Fatalf("Agents() error: %v", err)
	}

	if len(agents) != 1 {
		t.Fatalf("got %d agents, want 1: %+v", len(agents), agents)
	}
	util.AssertEqual(t, agents[0].Name, "code-reviewer")
	util.AssertEqual(t, agents[0].Category, "Review")
	util.AssertEqual(t, agents[0].Path, "../agents/review/code-reviewer.md")
}

func TestAgentCategoryTitleCasing(t *testing.T) {
	fs := afero.NewMemMapFs()
	util.WriteFile(t, fs, root+"/agents/code-review/nitpicker.md",
		"---\nname: nitpicker\ndescription: Finds nits.\n---\n")

	s := New(fs, root)
	agents, err := s.Agents()
	if err != nil {
		t.Fatalf("Agents() error: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d agents, want 1", len(agents))
	}
	util.AssertEqual(t, agents[0].Category, "Code-Review")
}

func TestCustomMissingTree(t *testing.T) {
	s := New(newFixtureFs(t), root)

	skills, err := s.CustomSkills()
	if err != nil {
		t.Fatalf("CustomSkills() error: %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("got %d custom skills, want 0", len(skills))
	}

	agents, err := s.CustomAgents()
	if err != nil {
		t.Fatalf("CustomAgents() error: %v", err)
	}
	if len(agents) != 0 {
		t.Errorf("got %d custom agents, want 0", len(agents))
	}
}

func TestCustomTrees(t *testing.T) {
	fs := newFixtureFs(t)
	util.WriteFile(t, fs, root+"/custom/skills/deploy/SKILL.md",
		"---\nname: deploy\ndescription: Ships it.\n---\n")
	util.WriteFile(t, fs, root+"/custom/agents/oncall.md",
		"---\nname: oncall\ndescription: Pages people.\n---\n")
	util.WriteFile(t, fs, root+"/custom/agents/README.md",
		"---\nname: readme\ndescription: Should be excluded.\n---\n")

	s := New(fs, root)

	skills, err := s.CustomSkills()
	if err != nil {
		t.Fatalf("CustomSkills() error: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("got %d custom skills, want 1", len(skills))
	}
	util.AssertEqual(t, skills[0].Name, "deploy")
	util.AssertEqual(t, skills[0].Path, "../custom/skills/deploy/SKILL.md")

	agents, err := s.CustomAgents()
	if err != nil {
		t.Fatalf("CustomAgents() error: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d custom agents, want 1", len(agents))
	}
	util.AssertEqual(t, agents[0].Name, "oncall")
}

func TestTraversalOrderIsLexicographic(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"zebra.md", "alpha.md", "mango.md"} {
		util.WriteFile(t, fs, root+"/rules/"+name,
			"---\nname: "+strings.TrimSuffix(name, ".md")+"\ndescription: d.\n---\n")
	}

	s := New(fs, root)
	rules, err := s.Rules()
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}

	var got []string
	for _, r := range rules {
		got = append(got, r.Name)
	}
	want := []string{"alpha", "mango", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
