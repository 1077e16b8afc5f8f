package frontmatter

import (
	"regexp"
	"strings"
)

// triggerRe matches the instructional phrases that separate a
// description's human-facing summary from its machine-facing trigger
// and usage clauses. Matching is case-insensitive; a phrase counts when
// it starts a line (after optional leading whitespace) or follows the
// end of a sentence.
var triggerRe = regexp.MustCompile(
	`(?i)(^|\n|\.\s)\s*(Use when\b|Use before\b|Use this\b|Use proactively\b|Recognizes?:|Triggers?:|Usage:|Optional:|Cancel:|Activate when:)`,
)

// CatalogDescription trims a raw metadata description down to its
// catalog-worthy prefix: everything before the first trigger phrase,
// with whitespace collapsed and a terminal period appended.
func CatalogDescription(raw string) string {
	if loc := triggerRe.FindStringIndex(raw); loc != nil {
		// The match may swallow the sentence period; normalization
		// below restores the terminal period either way.
		raw = raw[:loc[0]]
	}
	desc := strings.Join(strings.Fields(raw), " ")
	if desc != "" && !strings.HasSuffix(desc, ".") {
		desc += "."
	}
	return desc
}
