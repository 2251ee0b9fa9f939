package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"golang.org/x/text/transform"
)

var testRules = []Rule{
	{Old: []byte("</li>")},
	{Old: []byte("</p>")},
	{Old: []byte("<br/>"), New: []byte("<br>")},
	{Old: []byte("<br />"), New: []byte("<br>")},
	{Old: []byte("</"), New: []byte("[/")},
}

func TestReplacer(t *testing.T) {
	var tests = []struct{ in, out string }{
		{"", ""},
		{"plain text", "plain text"},
		{"<ul><li>one</li><li>two</li></ul>", "<ul><li>one<li>two[/ul>"},
		{"<p>a<br/>b<br />c</p>", "<p>a<br>b<br>c"},
		{"<br", "<br"},
		{"ends with </", "ends with [/"},
		{"</l", "[/l"},
	}
	for i, v := range tests {
		out, _, err := transform.String(NewReplacer(testRules...), v.in)
		if err != nil {
			t.Errorf("%d: %s", i, err)
			continue
		}
		if out != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}

func TestReaderChunked(t *testing.T) {
	in := strings.Repeat("<li>item</li><br />\n", 500)
	want := strings.Repeat("<li>item<br>\n", 500)
	r := NewReader(iotest.OneByteReader(strings.NewReader(in)), testRules...)
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != want {
		t.Errorf("chunked output differs")
	}
}

func TestReaderError(t *testing.T) {
	errBoom := errors.New("boom")
	r := NewReader(io.MultiReader(strings.NewReader("<p>x</p>"), iotest.ErrReader(errBoom)), testRules...)
	_, err := io.ReadAll(r)
	if !errors.Is(err, errBoom) {
		t.Errorf("expected %v, got %v", errBoom, err)
	}
}

func TestEmptyRules(t *testing.T) {
	out, _, err := transform.String(NewReplacer(Rule{}), "abc")
	if err != nil || out != "abc" {
		t.Errorf("got %q, %v", out, err)
	}
}
