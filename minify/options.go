// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

// Comment describes a comment by its literal start and end markers.
type Comment struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

var (
	HTMLComment  = Comment{Start: "<!--", End: "-->"}
	RazorComment = Comment{Start: "@*", End: "*@"}
)

// Options configures a Minifier.
//
// Options is meant to be unmarshalled from YAML on top of DefaultOptions,
// so that omitted keys keep their default values.
type Options struct {
	RemoveHTMLComments  bool `yaml:"remove_html_comments"`
	RemoveRazorComments bool `yaml:"remove_razor_comments"`
	RemoveStyleComments bool `yaml:"remove_style_comments"`
	MinifyStyles        bool `yaml:"minify_styles"`
	MinifyScripts       bool `yaml:"minify_scripts"`
	CollapseWhitespace  bool `yaml:"collapse_whitespace"`
	OptionalClosingTags bool `yaml:"optional_closing_tags"`
	URLSchemes          bool `yaml:"url_schemes"`

	// Comments overrides the comment list derived from RemoveHTMLComments
	// and RemoveRazorComments if it's not nil. An empty non-nil list
	// disables comment removal.
	Comments []Comment `yaml:"comments"`

	// ScriptMinifier and StyleMinifier are filter lines, as accepted
	// by filters.FromYAML: a filter name, or a name followed by arguments.
	ScriptMinifier interface{} `yaml:"script_minifier"`
	StyleMinifier  interface{} `yaml:"style_minifier"`

	// PreserveTags are tags whose content is kept byte-exact.
	PreserveTags []string `yaml:"preserve_tags"`
	// VoidTags are tags which lose their trailing slash.
	VoidTags []string `yaml:"void_tags"`
}

var (
	defaultPreserveTags = []string{"pre", "textarea"}
	defaultVoidTags     = []string{
		"area", "base", "br", "col", "command", "embed", "hr", "img", "input",
		"keygen", "link", "meta", "param", "source", "track", "wbr",
	}
)

// DefaultOptions returns a new copy of default options.
func DefaultOptions() *Options {
	return &Options{
		RemoveHTMLComments:  true,
		RemoveRazorComments: true,
		RemoveStyleComments: true,
		MinifyStyles:        true,
		MinifyScripts:       true,
		CollapseWhitespace:  false,
		OptionalClosingTags: true,
		URLSchemes:          true,
		ScriptMinifier:      "js",
		StyleMinifier:       "cssmin",
		PreserveTags:        append([]string(nil), defaultPreserveTags...),
		VoidTags:            append([]string(nil), defaultVoidTags...),
	}
}

// comments returns the list of comments to remove.
func (o *Options) comments() []Comment {
	if o.Comments != nil {
		return append([]Comment(nil), o.Comments...)
	}
	var cs []Comment
	if o.RemoveHTMLComments {
		cs = append(cs, HTMLComment)
	}
	if o.RemoveRazorComments {
		cs = append(cs, RazorComment)
	}
	return cs
}
