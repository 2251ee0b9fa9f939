// Package hashcache tells whether the given content at the path was already seen by it.
//
// The build uses it to skip minifying inputs which didn't change since
// the previous build.
package hashcache

import (
	"encoding/gob"
	"fmt"
	"os"
	"sync"

	"lukechampine.com/blake3"
)

const (
	hashSize          = 32
	fileFormatVersion = 1
)

type fileData struct {
	Version int
	Salt    []byte
	Hashes  map[string][hashSize]byte
}

type Cache struct {
	sync.Mutex
	filename string
	salt     []byte
	m        map[string][hashSize]byte
}

// Open loads the cache from the file with the given name, or returns
// an empty cache if the file doesn't exist or is unreadable. If filename
// is empty, the cache is kept only in memory.
func Open(filename string) (*Cache, error) {
	c := &Cache{filename: filename, m: make(map[string][hashSize]byte)}
	if filename == "" {
		return c, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	defer f.Close()
	var d fileData
	if err := gob.NewDecoder(f).Decode(&d); err != nil || d.Version != fileFormatVersion {
		// Start from scratch.
		return c, nil
	}
	c.salt = d.Salt
	if d.Hashes != nil {
		c.m = d.Hashes
	}
	return c, nil
}

// SetSalt sets a value mixed into every hash, such as serialized build
// options. If the salt differs from the one the cache was saved with,
// the cache is cleared.
func (c *Cache) SetSalt(salt []byte) {
	c.Lock()
	defer c.Unlock()
	if string(salt) != string(c.salt) {
		c.m = make(map[string][hashSize]byte)
		c.salt = append([]byte(nil), salt...)
	}
}

// contentHash returns hash of content. Cache must be locked.
func (c *Cache) contentHash(content []byte) (sum [hashSize]byte) {
	h := blake3.New(hashSize, nil)
	h.Write(c.salt)
	h.Write(content)
	h.Sum(sum[:0])
	return
}

// Seen sets content hash for the given path to a new value.
// It returns true if the content was already cached and had the same hash.
func (c *Cache) Seen(path string, content []byte) bool {
	c.Lock()
	defer c.Unlock()
	origHash, ok := c.m[path]
	newHash := c.contentHash(content)
	if !ok || origHash != newHash {
		c.m[path] = newHash
		return false
	}
	return true
}

// Forget removes the path from cache, so that the next call to
// Seen for it returns false.
func (c *Cache) Forget(path string) {
	c.Lock()
	defer c.Unlock()
	delete(c.m, path)
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.m)
}

// Save writes the cache to the file it was opened from.
// It does nothing for in-memory caches.
func (c *Cache) Save() (err error) {
	c.Lock()
	defer c.Unlock()
	if c.filename == "" {
		return nil
	}
	f, err := os.Create(c.filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// Delete file.
			os.Remove(c.filename)
		}
	}()
	err = gob.NewEncoder(f).Encode(&fileData{
		Version: fileFormatVersion,
		Salt:    c.salt,
		Hashes:  c.m,
	})
	if err != nil {
		return fmt.Errorf("hashcache: %w", err)
	}
	return nil
}
