package minify

import (
	"regexp"
	"strings"
)

var lineStartRx = regexp.MustCompile(`(?m)^\s*`)

// trimLineStarts removes whitespace at the beginning of every line.
// Since line breaks are whitespace too, blank lines disappear. When
// collapse is set, the whitespace is replaced with a single space instead.
//
// Collapsing breaks Razor directives, because their lines no longer start
// with `@`.
func trimLineStarts(s string, collapse bool) string {
	repl := ""
	if collapse {
		repl = " "
	}
	return lineStartRx.ReplaceAllLiteralString(s, repl)
}

// directivePrefixes are prefixes of Razor lines which must stay on
// their own line.
var directivePrefixes = []string{"@:", "@model", "@using", "@inject"}

func isDirective(line string) bool {
	for _, p := range directivePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// joinLines removes line breaks ("\r\n", "\r" or "\n") ending non-empty
// lines, except for Razor directive lines.
func joinLines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			b.WriteString(s)
			break
		}
		n := 1
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			n = 2
		}
		line := s[:i]
		b.WriteString(line)
		if line == "" || isDirective(line) {
			b.WriteString(s[i : i+n])
		}
		s = s[i+n:]
	}
	return b.String()
}
