package model

// Category identifies a skill grouping derived from the directory path
// between the skills root and the skill's own directory, e.g.
// skills/build/backend/api-design/SKILL.md has category "build/backend".
type Category string

// Known skill categories, in display order.
const (
	CategoryMeta          Category = "meta"
	CategoryBuildBackend  Category = "build/backend"
	CategoryBuildFrontend Category = "build/frontend"
	CategoryWorkflow      Category = "workflow"
	CategoryPatterns      Category = "patterns"

	// CategoryOther buckets skills that sit directly under the skills
	// root with no intermediate category directory.
	CategoryOther Category = "other"
)

// CategoryOrder returns the known categories in their fixed display order.
// Categories outside this list render after it, sorted lexicographically.
func CategoryOrder() []Category {
	return []Category{
		CategoryMeta,
		CategoryBuildBackend,
		CategoryBuildFrontend,
		CategoryWorkflow,
		CategoryPatterns,
	}
}

// categoryDisplay maps known categories to their section headings.
var categoryDisplay = map[Category]string{
	CategoryMeta:          "Meta",
	CategoryBuildBackend:  "Build — Backend",
	CategoryBuildFrontend: "Build — Frontend",
	CategoryWorkflow:      "Workflow",
	CategoryPatterns:      "Patterns",
	CategoryOther:         "Other",
}

// ParseCategory converts a raw path-derived key into a Category.
// An empty key means the skill had no category directory.
func ParseCategory(key string) Category {
	if key == "" {
		return CategoryOther
	}
	return Category(key)
}

// Known reports whether the category is one of the fixed set.
func (c Category) Known() bool {
	_, ok := categoryDisplay[c]
	return ok
}

// Display returns the heading text for the category. Unrecognized
// categories fall back to a title-cased form of their path key.
func (c Category) Display() string {
	if d, ok := categoryDisplay[c]; ok {
		return d
	}
	return TitleCase(string(c))
}

// String returns the raw category key.
func (c Category) String() string {
	return string(c)
}
