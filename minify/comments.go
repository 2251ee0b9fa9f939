package minify

import (
	"regexp"
)

func commentRegexp(c Comment) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(c.Start) + `[\s\S]*?` + regexp.QuoteMeta(c.End))
}

// removeComments removes comments of every configured kind, one kind
// after another. A comment ends at the nearest end marker.
func (m *Minifier) removeComments(s string) string {
	for _, rx := range m.comments {
		s = rx.ReplaceAllLiteralString(s, "")
	}
	return s
}

var styleCommentRx = regexp.MustCompile(`/\*[\s\S]*?\*/`)

// removeStyleComments removes /* ... */ comments inside style blocks.
func removeStyleComments(s string) string {
	return replaceBlocks(styleRx, s, func(_, body string) string {
		return styleCommentRx.ReplaceAllLiteralString(body, "")
	})
}
