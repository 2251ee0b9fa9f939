package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasFileExt(t *testing.T) {
	var tests = []struct {
		name string
		ok   bool
	}{
		{"index.cshtml", true},
		{"dir/Page.HTML", true},
		{"site.css", false},
		{"noext", false},
	}
	exts := []string{".cshtml", ".html"}
	for i, v := range tests {
		if ok := HasFileExt(v.name, exts); ok != v.ok {
			t.Errorf("%d: %s: expected %v", i, v.name, v.ok)
		}
	}
}

func TestMatchAny(t *testing.T) {
	globs := []string{"*~", ".DS_Store", "drafts/*"}
	var tests = []struct {
		path string
		ok   bool
	}{
		{"index.html~", true},
		{"sub/.DS_Store", true},
		{"drafts/a.html", true},
		{"index.html", false},
	}
	for i, v := range tests {
		ok, err := MatchAny(globs, v.path)
		if err != nil {
			t.Fatal(err)
		}
		if ok != v.ok {
			t.Errorf("%d: %s: expected %v", i, v.path, v.ok)
		}
	}
	if _, err := MatchAny([]string{"["}, "x"); err == nil {
		t.Errorf("expected error for bad glob")
	}
}

func TestSizeChange(t *testing.T) {
	var tests = []struct {
		from, to int
		out      string
	}{
		{1000, 750, "1.0 kB → 750 B, -25%"},
		{0, 0, "0 B → 0 B"},
	}
	for i, v := range tests {
		if s := SizeChange(v.from, v.to); s != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, s)
		}
	}
}

func TestUnmarshallYAMLFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "x.yml")
	if err := os.WriteFile(name, []byte("name: test\nlist: [a, b]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var v struct {
		Name string   `yaml:"name"`
		List []string `yaml:"list"`
	}
	if err := UnmarshallYAMLFile(name, &v); err != nil {
		t.Fatal(err)
	}
	if v.Name != "test" || len(v.List) != 2 {
		t.Errorf("unexpected value %+v", v)
	}
	if err := UnmarshallYAMLFile(name+".missing", &v); !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
