// Package render assembles discovered catalog entries into the final
// markdown document. Rendering is a pure function of its input: no
// filesystem access, no hidden state, so identical inputs always yield
// byte-identical output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/catalogen/catalogen/internal/model"
)

// Input holds the five discovered entry collections.
type Input struct {
	Rules        []model.Entry
	Skills       model.SkillSet
	Agents       []model.Entry
	CustomSkills []model.Entry
	CustomAgents []model.Entry
}

// Catalog renders the aggregated catalog document. Sections appear in
// fixed order with live entry counts in every heading. The writer emits
// the result verbatim, so the final blank line yields exactly one
// trailing newline.
func Catalog(in Input) string {
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(
		"<!-- AUTO-GENERATED by catalogen — do not edit manually -->",
		"",
		"# Skill Library — Catalog",
		"",
		"> [README](../README.md) | **CATALOG** | [SKILLS-EXPLAINED](SKILLS-EXPLAINED.md) | [ARTICLE](ARTICLE.md)",
		"",
		"> [!TIP]",
		"> To install any skill or agent below, see [Quickstart](../README.md#quickstart) in the README.",
		"",
	)

	add(fmt.Sprintf("## Rules (%d)", len(in.Rules)), "")
	add("*Always loaded — shape every interaction.*", "")
	add(tableHeader...)
	for _, r := range in.Rules {
		add(row(r))
	}
	add("", "---", "")

	add(fmt.Sprintf("## Skills (%d)", in.Skills.Total()), "")
	add("*Load on demand — teach Claude specialized workflows.*", "")
	for _, cat := range displayCategories(in.Skills) {
		entries := in.Skills[cat]
		add(fmt.Sprintf("### %s (%d)", cat.Display(), len(entries)), "")
		add(tableHeader...)
		for _, s := range entries {
			add(row(s))
		}
		add("")
	}
	add("---", "")

	add(fmt.Sprintf("## Agents (%d)", len(in.Agents)), "")
	add("*Isolated subprocesses — zero parent context in, result out.*", "")
	add("| Name | Category | Description |", "|------|----------|------------|")
	for _, a := range in.Agents {
		add(fmt.Sprintf("| [%s](%s) | %s | %s |", a.Name, a.Path, a.Category, a.Description))
	}
	add("", "---", "")

	add("## Custom", "")
	if len(in.CustomSkills) == 0 && len(in.CustomAgents) == 0 {
		add("*Your project-specific skills and agents — not tracked by upstream. See [custom/README.md](../custom/README.md) to get started.*", "")
	} else {
		if len(in.CustomSkills) > 0 {
			add(fmt.Sprintf("### Custom Skills (%d)", len(in.CustomSkills)), "")
			add(tableHeader...)
			for _, s := range in.CustomSkills {
				add(row(s))
			}
			add("")
		}
		if len(in.CustomAgents) > 0 {
			add(fmt.Sprintf("### Custom Agents (%d)", len(in.CustomAgents)), "")
			add(tableHeader...)
			for _, a := range in.CustomAgents {
				add(row(a))
			}
			add("")
		}
	}

	return strings.Join(lines, "\n")
}

// tableHeader is the two-column table preamble shared by most sections.
var tableHeader = []string{
	"| Name | Description |",
	"|------|------------|",
}

// row renders a two-column table row with the name linked to the path.
func row(e model.Entry) string {
	return fmt.Sprintf("| [%s](%s) | %s |", e.Name, e.Path, e.Description)
}

// displayCategories returns the categories to render: the known ones in
// their fixed order (skipping any with no entries), then any remaining
// categories in lexicographic order so no discovered entry is silently
// dropped.
func displayCategories(set model.SkillSet) []model.Category {
	var cats []model.Category
	seen := make(map[model.Category]bool)
	for _, c := range model.CategoryOrder() {
		if len(set[c]) > 0 {
			cats = append(cats, c)
			seen[c] = true
		}
	}

	var rest []model.Category
	for c := range set {
		if !seen[c] && len(set[c]) > 0 {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	return append(cats, rest...)
}
