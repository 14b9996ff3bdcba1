package patch

import "strings"

// BuildHunk formats a hunk as `@@ -o,oc +n,nc @@` followed by one line per
// body entry. An empty body line is written as a single space: git apply
// rejects a truly empty line inside a hunk as a corrupt patch. The result
// always ends in a newline, even for a header-only hunk.
func BuildHunk(h Hunk) string {
	var b strings.Builder
	b.WriteString(formatHeader(h.OldStart, h.OldCount, h.NewStart, h.NewCount))
	b.WriteByte('\n')
	for _, line := range h.Body {
		if line == "" {
			line = " "
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
