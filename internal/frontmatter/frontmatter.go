// Package frontmatter extracts the flat key/value metadata block that
// leads a documentation file.
//
// The syntax is a deliberately restricted subset of YAML frontmatter:
// a "---" delimiter line, flat "key: value" pairs, optional multi-line
// values introduced by "|", and optional single- or double-quoted scalar
// values with "\n" and "\"" escapes. Nested structures, lists, and
// multiple documents are out of scope; files that need them do not
// belong in the catalog.
package frontmatter

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/catalogen/catalogen/internal/model"
)

// delimiter marks the start and end of a metadata block.
const delimiter = "---"

// keyRe matches a "key: value" line. Keys are identifiers (word
// characters plus hyphens); the value part may be empty.
var keyRe = regexp.MustCompile(`^(\w[\w-]*)\s*:\s*(.*)$`)

// Extract parses the leading metadata block of content. The second
// return value is false when no block is present, which is an expected
// outcome for plain files, not an error.
func Extract(content []byte) (model.Metadata, bool) {
	body, ok := splitBlock(content)
	if !ok {
		return model.Metadata{}, false
	}
	return model.FromMap(parseFlat(body)), true
}

// splitBlock returns the text between the opening and closing delimiter
// lines. Both Unix and Windows line endings are accepted; the body is
// normalized to "\n".
func splitBlock(content []byte) (string, bool) {
	rest, ok := cutDelimiterLine(content)
	if !ok {
		return "", false
	}

	// Empty block: the closing delimiter follows immediately.
	if _, ok := cutDelimiterLine(rest); ok {
		return "", true
	}

	// Scan for a "---" that starts a line and ends one. A "\n---" hit
	// that continues with more text (a horizontal rule, say) is not a
	// closing delimiter; keep searching past it.
	closing := []byte("\n" + delimiter)
	for off := 0; ; {
		idx := bytes.Index(rest[off:], closing)
		if idx == -1 {
			return "", false
		}
		pos := off + idx
		after := rest[pos+len(closing):]
		if closesLine(after) {
			body := bytes.TrimSuffix(rest[:pos], []byte("\r"))
			body = bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n"))
			return string(body), true
		}
		off = pos + 1
	}
}

// cutDelimiterLine strips a leading delimiter line, tolerating trailing
// whitespace before the newline.
func cutDelimiterLine(content []byte) ([]byte, bool) {
	if !bytes.HasPrefix(content, []byte(delimiter)) {
		return nil, false
	}
	rest := content[len(delimiter):]
	idx := bytes.IndexByte(rest, '\n')
	if idx == -1 {
		return nil, false
	}
	if len(bytes.TrimSpace(rest[:idx])) != 0 {
		return nil, false
	}
	return rest[idx+1:], true
}

// closesLine reports whether the text after a closing delimiter ends the
// line (end of file, or whitespace followed by a newline).
func closesLine(after []byte) bool {
	idx := bytes.IndexByte(after, '\n')
	if idx == -1 {
		return len(bytes.TrimSpace(after)) == 0
	}
	return len(bytes.TrimSpace(after[:idx])) == 0
}

// parseFlat walks the block body line by line, accumulating flat
// key/value pairs. When the same key appears twice, the last occurrence
// wins: matching a new key line flushes whatever was accumulated before
// it, so an earlier value for the same key is simply overwritten.
func parseFlat(body string) map[string]string {
	result := make(map[string]string)

	var (
		currentKey string
		current    []string
		haveKey    bool
		multiline  bool
	)

	flush := func() {
		if haveKey {
			result[currentKey] = strings.TrimSpace(strings.Join(current, "\n"))
		}
	}

	for _, line := range strings.Split(body, "\n") {
		m := keyRe.FindStringSubmatch(line)
		// An indented line inside a multi-line value is a continuation
		// even when it happens to look like a key.
		if m != nil && !(multiline && strings.HasPrefix(line, " ")) {
			flush()
			currentKey = m[1]
			haveKey = true
			value := strings.TrimSpace(m[2])
			if value == "|" {
				multiline = true
				current = nil
			} else {
				multiline = false
				current = []string{unquote(value)}
			}
			continue
		}
		if multiline && haveKey {
			current = append(current, strings.TrimSpace(line))
		}
		// Anything else (blank lines, comments) is ignored.
	}
	flush()

	return result
}

// unquote strips matching surrounding quotes and resolves escapes.
// Double-escaped forms must resolve before single-escaped forms so a
// literal backslash-n in the source never unescapes twice.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	if (first != '\'' && first != '"') || value[len(value)-1] != first {
		return value
	}
	value = value[1 : len(value)-1]
	value = strings.ReplaceAll(value, `\\n`, "\n")
	value = strings.ReplaceAll(value, `\n`, "\n")
	value = strings.ReplaceAll(value, `\\"`, `"`)
	value = strings.ReplaceAll(value, `\"`, `"`)
	return value
}
