package minify

import (
	"log"
	"regexp"
	"strings"

	"github.com/dchest/razormin/filters"
)

var (
	scriptRx = regexp.MustCompile(`(?i)(<script\b[^>]*>)([\s\S]*?)(</script\s*>)`)
	styleRx  = regexp.MustCompile(`(?i)(<style\b[^>]*>)([\s\S]*?)(</style\s*>)`)
)

// hasRazorCode reports whether s contains Razor expressions
// or code blocks, @(...) or @{...}.
func hasRazorCode(s string) bool {
	return strings.Contains(s, "@(") || strings.Contains(s, "@{")
}

// replaceBlocks calls fn for every match of rx, which must have three
// groups (opening tag, body, closing tag), and replaces the body with
// the result.
func replaceBlocks(rx *regexp.Regexp, s string, fn func(open, body string) string) string {
	locs := rx.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		open, body, close := s[loc[2]:loc[3]], s[loc[4]:loc[5]], s[loc[6]:loc[7]]
		b.WriteString(s[last:loc[0]])
		b.WriteString(open)
		b.WriteString(fn(open, body))
		b.WriteString(close)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// minifyBlock returns the body minified with f, or the original body if it
// contains Razor code or f fails.
func minifyBlock(f filters.Filter, open, body string) string {
	if strings.TrimSpace(body) == "" || hasRazorCode(body) {
		return body
	}
	out, err := f.Apply([]byte(body))
	if err != nil {
		log.Printf("! %s failed on %s block, keeping it unminified: %s", f.Name(), open, err)
		return body
	}
	return string(out)
}

// minifyScripts minifies the body of every script block.
func (m *Minifier) minifyScripts(s string) string {
	return replaceBlocks(scriptRx, s, func(open, body string) string {
		return minifyBlock(m.script, open, body)
	})
}

// minifyStyles minifies the body of every style block.
func (m *Minifier) minifyStyles(s string) string {
	return replaceBlocks(styleRx, s, func(open, body string) string {
		return minifyBlock(m.style, open, body)
	})
}
