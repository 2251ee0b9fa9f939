// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minify implements a minifier for HTML and Razor templates.
//
// It is not an HTML parser: every pass is a textual rewrite of the whole
// document. The passes run in a fixed order:
//
//	 1. inline scripts are minified
//	 2. inline styles are minified
//	 3. preserved blocks (pre, textarea) are replaced with placeholders
//	 4. optional closing tags are removed
//	 5. trailing slashes of void tags are removed
//	 6. attribute values are unquoted and URL schemes removed
//	 7. whitespace at line starts is removed or collapsed
//	 8. lines are joined, except for Razor directive lines
//	 9. comments are removed
//	10. comments inside style blocks are removed
//	11. preserved blocks are put back
//
// Scripts and styles are minified first, because later passes would break
// their syntax. Placeholders hide preserved blocks from passes 4 to 10.
package minify

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/dchest/razormin/filters"
	"github.com/dchest/razormin/stream"
)

// Minifier minifies HTML documents. It is immutable and
// may be used to minify multiple documents concurrently.
type Minifier struct {
	opts     Options
	script   filters.Filter
	style    filters.Filter
	comments []*regexp.Regexp
	openRx   *regexp.Regexp
	closeRx  map[string]*regexp.Regexp
	voidRx   *regexp.Regexp
}

// New returns a new Minifier configured with the given options.
// If opts is nil, default options are used.
func New(opts *Options) (*Minifier, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := &Minifier{opts: *opts}
	m.opts.PreserveTags = normalizeTags(opts.PreserveTags)
	m.opts.VoidTags = normalizeTags(opts.VoidTags)
	m.opts.Comments = opts.comments()

	var err error
	if m.opts.MinifyScripts {
		if m.script, err = makeFilter(opts.ScriptMinifier, "js"); err != nil {
			return nil, fmt.Errorf("script minifier: %w", err)
		}
	}
	if m.opts.MinifyStyles {
		if m.style, err = makeFilter(opts.StyleMinifier, "cssmin"); err != nil {
			return nil, fmt.Errorf("style minifier: %w", err)
		}
	}
	for i, c := range m.opts.Comments {
		if c.Start == "" || c.End == "" {
			return nil, fmt.Errorf("comment %d: empty start or end marker", i)
		}
		m.comments = append(m.comments, commentRegexp(c))
	}
	if len(m.opts.PreserveTags) > 0 {
		m.openRx = openTagRegexp(m.opts.PreserveTags)
		m.closeRx = make(map[string]*regexp.Regexp)
		for _, tag := range m.opts.PreserveTags {
			m.closeRx[tag] = closeTagRegexp(tag)
		}
	}
	if len(m.opts.VoidTags) > 0 {
		m.voidRx = voidTagRegexp(m.opts.VoidTags)
	}
	return m, nil
}

// Options returns a copy of options the minifier was created with,
// with the comment list resolved.
func (m *Minifier) Options() *Options {
	o := m.opts
	o.Comments = append([]Comment(nil), m.opts.Comments...)
	o.PreserveTags = append([]string(nil), m.opts.PreserveTags...)
	o.VoidTags = append([]string(nil), m.opts.VoidTags...)
	return &o
}

func makeFilter(line interface{}, def string) (filters.Filter, error) {
	if line == nil {
		line = def
	}
	return filters.FromYAML(line)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Minify returns a minified version of the given HTML.
// It never fails: blocks which can't be minified are left as is.
func (m *Minifier) Minify(in []byte) []byte {
	return []byte(m.MinifyString(string(in)))
}

// MinifyString is like Minify, but works with strings.
func (m *Minifier) MinifyString(s string) string {
	if m.opts.MinifyScripts {
		s = m.minifyScripts(s)
	}
	if m.opts.MinifyStyles {
		s = m.minifyStyles(s)
	}
	s, blocks := m.protect(s)
	if m.opts.OptionalClosingTags {
		s = removeOptionalClosingTags(s)
	}
	s = m.removeVoidSlashes(s)
	s = m.collapseAttributes(s)
	s = trimLineStarts(s, m.opts.CollapseWhitespace)
	s = joinLines(s)
	s = m.removeComments(s)
	if m.opts.RemoveStyleComments {
		s = removeStyleComments(s)
	}
	s, n := restore(s, blocks)
	if n != len(blocks) {
		log.Printf("! %d of %d preserved blocks lost their placeholder and were dropped", len(blocks)-n, len(blocks))
	}
	return s
}

// StreamRules returns literal replacement rules which can be applied to
// a stream without seeing the whole document: removal of optional closing
// tags and of trailing slashes in void tags without attributes.
func (m *Minifier) StreamRules() []stream.Rule {
	var rules []stream.Rule
	if m.opts.OptionalClosingTags {
		for _, tag := range optionalClosingTags {
			rules = append(rules, stream.Rule{Old: []byte("</" + tag + ">")})
		}
	}
	for _, tag := range m.opts.VoidTags {
		bare := []byte("<" + tag + ">")
		rules = append(rules,
			stream.Rule{Old: []byte("<" + tag + "/>"), New: bare},
			stream.Rule{Old: []byte("<" + tag + " />"), New: bare},
		)
	}
	return rules
}
