package model

// Entry is one row's worth of catalog data: a documentation file that
// carried a valid metadata block. Path is rendered relative to the
// generated document's directory so links resolve from docs/.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`

	// Category is the display category. Only agent entries carry one.
	Category string `json:"category,omitempty"`
}

// SkillSet holds skill entries grouped by category. Entries within a
// category keep their file-system traversal order.
type SkillSet map[Category][]Entry

// Total returns the number of entries across all categories.
func (s SkillSet) Total() int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}

// Add appends an entry under the given category.
func (s SkillSet) Add(c Category, e Entry) {
	s[c] = append(s[c], e)
}
