// Package model defines the data types shared across catalogen:
// parsed metadata blocks, catalog entries, and skill categories.
package model

// Metadata is the flat key/value preamble parsed from the top of a
// documentation file. Known fields are promoted to named fields so
// required-field checks stay type-safe; everything else lands in Extra.
type Metadata struct {
	Name        string
	Description string
	Extra       map[string]string
}

// FromMap builds a Metadata from a raw parsed mapping.
func FromMap(raw map[string]string) Metadata {
	md := Metadata{
		Name:        raw["name"],
		Description: raw["description"],
	}
	for k, v := range raw {
		if k == "name" || k == "description" {
			continue
		}
		if md.Extra == nil {
			md.Extra = make(map[string]string)
		}
		md.Extra[k] = v
	}
	return md
}

// HasName reports whether the block carries the required name key.
func (m Metadata) HasName() bool {
	return m.Name != ""
}

// Get returns the value for key, checking named fields before Extra.
func (m Metadata) Get(key string) string {
	switch key {
	case "name":
		return m.Name
	case "description":
		return m.Description
	default:
		return m.Extra[key]
	}
}
