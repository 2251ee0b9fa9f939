package hashcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSeen(t *testing.T) {
	path0 := "some/path"
	path1 := "another/path"
	content0 := []byte("some content to hash")
	content1 := []byte("some other content")

	filename := filepath.Join(t.TempDir(), "cache")
	c, err := Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	res := c.Seen(path0, content0)
	if res {
		t.Errorf("0/0 update returned true, expected false")
	}
	res = c.Seen(path0, content0)
	if !res {
		t.Errorf("0/0 update returned false, expected true")
	}
	res = c.Seen(path1, content0)
	if res {
		t.Errorf("1/0 update returned true, expected false")
	}
	res = c.Seen(path1, content0)
	if !res {
		t.Errorf("1/0 update returned false, expected true")
	}
	res = c.Seen(path0, content1)
	if res {
		t.Errorf("0/1 update returned true, expected false")
	}

	// Write to file.
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	// Read and check.
	nc, err := Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	if nc.Len() != 2 {
		t.Errorf("expected 2 paths, got %d", nc.Len())
	}
	res = nc.Seen(path1, content0)
	if !res {
		t.Errorf("1/0 update returned false, expected true")
	}
	res = nc.Seen(path0, content1)
	if !res {
		t.Errorf("0/1 update returned false, expected true")
	}
	res = nc.Seen("something", []byte("completely different"))
	if res {
		t.Errorf("update returned true, expected false")
	}
	nc.Forget(path1)
	if nc.Seen(path1, content0) {
		t.Errorf("forgotten path was seen")
	}
}

func TestSalt(t *testing.T) {
	c, _ := Open("")
	c.SetSalt([]byte("a"))
	c.Seen("p", []byte("x"))
	c.SetSalt([]byte("a"))
	if !c.Seen("p", []byte("x")) {
		t.Errorf("same salt cleared cache")
	}
	c.SetSalt([]byte("b"))
	if c.Seen("p", []byte("x")) {
		t.Errorf("new salt didn't clear cache")
	}
}

func TestBadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cache")
	if err := os.WriteFile(filename, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache")
	}
}

func BenchmarkSeen(b *testing.B) {
	c, _ := Open("")
	b.ResetTimer()
	path := "path"
	content := make([]byte, 128)
	for i := 0; i < b.N; i++ {
		c.Seen(path, content)
	}
}

func BenchmarkSeen6(b *testing.B) {
	c, _ := Open("")
	path0 := "some/kinda/long/path_to_file.txt"
	path1 := "other/path"
	content0 := make([]byte, 1024)
	content1 := make([]byte, 200)
	b.SetBytes(3 * int64(len(content0)+len(content1)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Seen(path0, content0)
		c.Seen(path1, content1)

		c.Seen(path0, content0)
		c.Seen(path1, content1)

		c.Seen(path0, content1)
		c.Seen(path1, content0)
	}
}
