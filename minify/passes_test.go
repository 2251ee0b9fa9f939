package minify

import (
	"strings"
	"testing"
)

func TestProtectRestore(t *testing.T) {
	m := newTestMinifier(t, nil)
	var tests = []struct {
		in     string
		blocks []string
	}{
		{"no blocks", nil},
		{"<div><pre> a  b </pre><textarea>\n x</textarea><pre>c</pre></div>",
			[]string{"<pre> a  b </pre>", "<textarea>\n x</textarea>", "<pre>c</pre>"}},
		{"<textarea name=t><pre>x</pre></textarea>", []string{"<textarea name=t><pre>x</pre></textarea>"}},
		{"<PRE class=\"x\">A</PRE >", []string{"<PRE class=\"x\">A</PRE >"}},
		{"<pre>unclosed <textarea>t</textarea>", []string{"<textarea>t</textarea>"}},
		{"<preview>x</preview>", nil},
	}
	for i, v := range tests {
		s, blocks := m.protect(v.in)
		if len(blocks) != len(v.blocks) {
			t.Errorf("%d: expected %d blocks, got %d", i, len(v.blocks), len(blocks))
			continue
		}
		seen := make(map[string]bool)
		for j, b := range blocks {
			if b.Original != v.blocks[j] {
				t.Errorf("%d/%d: expected %q, got %q", i, j, v.blocks[j], b.Original)
			}
			if strings.Count(s, b.Placeholder) != 1 {
				t.Errorf("%d/%d: placeholder %q not found once in %q", i, j, b.Placeholder, s)
			}
			if seen[b.Placeholder] {
				t.Errorf("%d/%d: duplicate placeholder %q", i, j, b.Placeholder)
			}
			seen[b.Placeholder] = true
			if strings.Contains(s, b.Original) {
				t.Errorf("%d/%d: original still present", i, j)
			}
		}
		r, n := restore(s, blocks)
		if n != len(blocks) {
			t.Errorf("%d: restored %d of %d blocks", i, n, len(blocks))
		}
		if len(blocks) == 0 && r != v.in {
			t.Errorf("%d: expected %q, got %q", i, v.in, r)
		}
		for _, b := range blocks {
			if strings.Count(r, blockSeparator+b.Original) != 1 {
				t.Errorf("%d: %q not restored once after a line break: %q", i, b.Original, r)
			}
		}
	}
}

func TestPlaceholder(t *testing.T) {
	if p := placeholder("pre", 2); p != "<INTEGRITY-pre-3-2></INTEGRITY-pre-3-2>" {
		t.Errorf("unexpected placeholder %q", p)
	}
}

func TestRestoreMissing(t *testing.T) {
	blocks := []Block{
		{Placeholder: placeholder("pre", 0), Original: "<pre>0</pre>"},
		{Placeholder: placeholder("pre", 1), Original: "<pre>1</pre>"},
	}
	s, n := restore("a"+blocks[1].Placeholder+"b", blocks)
	if n != 1 {
		t.Errorf("expected 1 restored block, got %d", n)
	}
	if want := "a\r\n<pre>1</pre>b"; s != want {
		t.Errorf("expected %q, got %q", want, s)
	}
}

func TestNoPreserveTags(t *testing.T) {
	m := newTestMinifier(t, func(o *Options) { o.PreserveTags = nil })
	if out := m.MinifyString("<pre>\n  a\n</pre>"); out != "<pre>a</pre>" {
		t.Errorf("unexpected %q", out)
	}
}

func TestRemoveOptionalClosingTags(t *testing.T) {
	var tests = []struct{ in, out string }{
		{"<ul><li>a</li><li>b</li></ul>", "<ul><li>a<li>b</ul>"},
		{"<table><tr><th>h</th><td>d</td></tr></table>", "<table><tr><th>h<td>d</tr></table>"},
		{"<p>x</p></body></html>", "<p>x"},
		{"<select><optgroup><option>1</option></optgroup></select>", "<select><optgroup><option>1</select>"},
		{"<pre>x</pre><span>y</span>", "<pre>x</pre><span>y</span>"},
		{"</P></LI>", ""},
	}
	for i, v := range tests {
		if out := removeOptionalClosingTags(v.in); out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}

func TestRemoveVoidSlashes(t *testing.T) {
	m := newTestMinifier(t, nil)
	var tests = []struct{ in, out string }{
		{`<img src="a.png" />`, `<img src="a.png">`},
		{`<br/>`, `<br>`},
		{`<br />text<hr  />`, `<br>text<hr>`},
		{`<input type="text"/>`, `<input type="text">`},
		{`<div/>`, `<div/>`},
		{`<colgroup/>`, `<colgroup/>`},
		{`<img src="a/b.png">`, `<img src="a/b.png">`},
		{"<meta\n  charset=utf-8\n/>", "<meta\n  charset=utf-8>"},
	}
	for i, v := range tests {
		if out := m.removeVoidSlashes(v.in); out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}

func TestCollapseAttributes(t *testing.T) {
	m := newTestMinifier(t, nil)
	var tests = []struct{ in, out string }{
		{`<div class="foo">`, `<div class=foo>`},
		{`<div title="a b">`, `<div title="a b">`},
		{`<div data-x = 'y' id="z">`, `<div data-x=y id=z>`},
		{`<a href="http://example.com/x">`, `<a href="//example.com/x">`},
		{`<a href='https://example.com'>`, `<a href='//example.com'>`},
		{`<input value='it"s'>`, `<input value='it"s'>`},
		{`<img alt="">`, `<img alt="">`},
		{`<a href="@Url.Action("Index")">`, `<a href="@Url.Action("Index")">`},
		{`<p title="x>y" class="c">`, `<p title="x>y" class=c>`},
		{`text a = "b" here`, `text a = "b" here`},
		{`<p class="x">a="b"</p>`, `<p class=x>a="b"</p>`},
		{`if(a<b){s="xy"}`, `if(a<b){s="xy"}`},
	}
	for i, v := range tests {
		if out := m.collapseAttributes(v.in); out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}

	m = newTestMinifier(t, func(o *Options) { o.URLSchemes = false })
	in := `<a href="http://example.com/x" class="c">`
	want := `<a href="http://example.com/x" class=c>`
	if out := m.collapseAttributes(in); out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestTrimLineStarts(t *testing.T) {
	var tests = []struct {
		in       string
		collapse bool
		out      string
	}{
		{"  a\n\n\t b\n", false, "a\nb\n"},
		{"a\n    \n  b", false, "a\nb"},
		{"  a\n  b", true, " a\n b"},
		{"\t\t@model Foo\n", false, "@model Foo\n"},
	}
	for i, v := range tests {
		if out := trimLineStarts(v.in, v.collapse); out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}

func TestJoinLines(t *testing.T) {
	var tests = []struct{ in, out string }{
		{"a\nb\nc", "abc"},
		{"a\r\nb\rc\n", "abc"},
		{"a\n\nb", "a\nb"},
		{"@model Foo\r\n<p>a\n<p>b\r@using X\nend", "@model Foo\r\n<p>a<p>b@using X\nend"},
		{"@inject IFoo Foo\n@: text\n<p>", "@inject IFoo Foo\n@: text\n<p>"},
		{" @model Foo\nx", " @model Foox"},
	}
	for i, v := range tests {
		if out := joinLines(v.in); out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}
