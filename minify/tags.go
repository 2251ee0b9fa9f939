package minify

import (
	"regexp"
	"strings"
)

// optionalClosingTags are tags whose closing tag may be omitted.
// See https://www.w3.org/TR/html5/syntax.html#optional-tags
var optionalClosingTags = []string{
	"body", "html", "li", "rt", "rp", "optgroup", "option", "td", "th", "p",
}

var optionalClosingTagsRx = regexp.MustCompile(`(?i)</(?:` + strings.Join(optionalClosingTags, "|") + `)>`)

// removeOptionalClosingTags deletes closing tags which HTML allows to omit.
// Only the closing tag tokens are removed.
func removeOptionalClosingTags(s string) string {
	return optionalClosingTagsRx.ReplaceAllLiteralString(s, "")
}

func voidTagRegexp(tags []string) *regexp.Regexp {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)(<(?:` + strings.Join(quoted, "|") + `)\b[^>]*?)\s*/>`)
}

// removeVoidSlashes turns `<br />` and `<img src="a.png"/>` into `<br>` and
// `<img src="a.png">`.
func (m *Minifier) removeVoidSlashes(s string) string {
	if m.voidRx == nil {
		return s
	}
	return m.voidRx.ReplaceAllString(s, "$1>")
}

var (
	// startTagRx matches a start tag, allowing `>` in quoted values.
	startTagRx  = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9:._-]*(?:\s(?:"[^"]*"|'[^']*'|[^'">])*)?>`)
	attrRx      = regexp.MustCompile(`([a-zA-Z0-9_-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	urlSchemeRx = regexp.MustCompile(`https?://`)
)

// unsafeValueChars are characters which require a value to be quoted.
const unsafeValueChars = " \t\n\r\f\v<>`/=@\"'"

// collapseAttributes rewrites quoted attribute values in start tags,
// removing whitespace around `=` and quotes where they are not needed.
// If URL schemes option is set, `http://` and `https://` in values are
// replaced with `//`. Whether a value needs quotes is decided on the value
// as written, before the scheme is removed, so `href="http://a/b"` becomes
// `href="//a/b"`.
func (m *Minifier) collapseAttributes(s string) string {
	return startTagRx.ReplaceAllStringFunc(s, func(tag string) string {
		return replaceAttrs(tag, m.opts.URLSchemes)
	})
}

func replaceAttrs(tag string, urlSchemes bool) string {
	locs := attrRx.FindAllStringSubmatchIndex(tag, -1)
	if locs == nil {
		return tag
	}
	var b strings.Builder
	b.Grow(len(tag))
	last := 0
	for _, loc := range locs {
		name := tag[loc[2]:loc[3]]
		quote := tag[loc[1]-1 : loc[1]]
		var value string
		if loc[4] >= 0 {
			value = tag[loc[4]:loc[5]]
		} else {
			value = tag[loc[6]:loc[7]]
		}
		needsQuotes := value == "" || strings.ContainsAny(value, unsafeValueChars)
		if urlSchemes {
			value = urlSchemeRx.ReplaceAllLiteralString(value, "//")
		}
		b.WriteString(tag[last:loc[0]])
		b.WriteString(name)
		b.WriteByte('=')
		if needsQuotes {
			b.WriteString(quote)
			b.WriteString(value)
			b.WriteString(quote)
		} else {
			b.WriteString(value)
		}
		last = loc[1]
	}
	b.WriteString(tag[last:])
	return b.String()
}
