package minify

import (
	"fmt"
	"regexp"
	"strings"
)

// Block is a preserved block replaced with a placeholder.
type Block struct {
	Placeholder string
	Original    string // opening tag, content and closing tag
}

// blockSeparator is put before every restored block,
// so that it always starts on its own line.
const blockSeparator = "\r\n"

func openTagRegexp(tags []string) *regexp.Regexp {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)<(` + strings.Join(quoted, "|") + `)\b[^>]*>`)
}

func closeTagRegexp(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(tag) + `\s*>`)
}

func placeholder(tag string, n int) string {
	name := fmt.Sprintf("INTEGRITY-%s-%d-%d", tag, len(tag), n)
	return "<" + name + "></" + name + ">"
}

// protect replaces preserved blocks in s with placeholders and returns
// the result with the list of replaced blocks in the order they appear.
//
// The scan goes left to right over all preserved tags at once. A block
// extends from its opening tag to the first closing tag with the same
// name, so a preserved tag nested in another one belongs to the outer
// block. Opening tags without a closing tag are left alone.
func (m *Minifier) protect(s string) (string, []Block) {
	if m.openRx == nil {
		return s, nil
	}
	var (
		b      strings.Builder
		blocks []Block
		pos    int
	)
	for pos < len(s) {
		loc := m.openRx.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, openEnd := pos+loc[0], pos+loc[1]
		tag := strings.ToLower(s[pos+loc[2] : pos+loc[3]])
		end := m.closeRx[tag].FindStringIndex(s[openEnd:])
		if end == nil {
			b.WriteString(s[pos:openEnd])
			pos = openEnd
			continue
		}
		stop := openEnd + end[1]
		ph := placeholder(tag, len(blocks))
		blocks = append(blocks, Block{Placeholder: ph, Original: s[start:stop]})
		b.WriteString(s[pos:start])
		b.WriteString(ph)
		pos = stop
	}
	if blocks == nil {
		return s, nil
	}
	b.WriteString(s[pos:])
	return b.String(), blocks
}

// restore puts blocks back in place of their placeholders, each one
// prefixed with a line break. Placeholders are expected in the same order
// as blocks. A block whose placeholder is gone (for example, because it
// was inside a removed comment) is dropped. It returns the result and the
// number of blocks restored.
func restore(s string, blocks []Block) (string, int) {
	if len(blocks) == 0 {
		return s, 0
	}
	var b strings.Builder
	b.Grow(len(s))
	pos, n := 0, 0
	for _, v := range blocks {
		i := strings.Index(s[pos:], v.Placeholder)
		if i < 0 {
			continue
		}
		b.WriteString(s[pos : pos+i])
		b.WriteString(blockSeparator)
		b.WriteString(v.Original)
		pos += i + len(v.Placeholder)
		n++
	}
	b.WriteString(s[pos:])
	return b.String(), n
}
