// Package filewriter writes build output files along with their
// precompressed variants (name.gz, name.br).
package filewriter

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/sync/errgroup"
)

// razormin.yml -> compress:
type CompressConfig struct {
	Methods    []string `yaml:"methods"`
	Extensions []string `yaml:"extensions"`
}

type Compressor struct {
	Ext string
	New func(w io.Writer) io.WriteCloser
}

var gzipCompressor = &Compressor{
	Ext: "gz",
	New: func(w io.Writer) io.WriteCloser {
		z, err := gzip.NewWriterLevel(w, gzipLevel)
		if err != nil {
			panic(err.Error()) // shouldn't happen
		}
		return z
	},
}

var brotliCompressor = &Compressor{
	Ext: "br",
	New: func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, brotliLevel)
	},
}

const (
	gzipLevel   = 9
	brotliLevel = 11
)

type FileWriter struct {
	compressedExtensions map[string]struct{}
	compressors          []*Compressor
}

// New returns a new FileWriter. If c is nil, files are not compressed.
func New(c *CompressConfig) (*FileWriter, error) {
	extensions := make(map[string]struct{})
	compressors := make([]*Compressor, 0)
	if c != nil {
		for _, v := range c.Extensions {
			if !strings.HasPrefix(v, ".") {
				v = "." + v
			}
			extensions[v] = struct{}{}
		}
		for _, v := range c.Methods {
			switch v {
			case "gzip", "gz":
				compressors = append(compressors, gzipCompressor)
			case "brotli", "br":
				compressors = append(compressors, brotliCompressor)
			default:
				return nil, fmt.Errorf("unknown compression method: %q", v)
			}
		}
	}
	return &FileWriter{
		compressedExtensions: extensions,
		compressors:          compressors,
	}, nil
}

// compressorsFor returns compressors to use for the file.
func (f *FileWriter) compressorsFor(filename string) []*Compressor {
	if _, ok := f.compressedExtensions[filepath.Ext(filename)]; ok {
		return f.compressors
	}
	return nil
}

// writeCompressed writes data compressed with c to filename.ext.
func writeCompressed(c *Compressor, filename string, r io.Reader) (err error) {
	outfile := filename + "." + c.Ext
	out, err := os.OpenFile(outfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(outfile)
		}
	}()
	z := c.New(out)
	if _, err = io.Copy(z, r); err != nil {
		z.Close()
		return err
	}
	return z.Close()
}

// WriteFile writes data to the file, creating directories if needed,
// and its compressed variants if the file extension is configured
// for compression.
func (f *FileWriter) WriteFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	var g errgroup.Group
	g.Go(func() error {
		return os.WriteFile(filename, data, 0644)
	})
	for _, c := range f.compressorsFor(filename) {
		c := c
		g.Go(func() error {
			return writeCompressed(c, filename, bytes.NewReader(data))
		})
	}
	return g.Wait()
}

func copyFile(outfile, infile string) (err error) {
	// Remove old outfile, ignoring errors.
	os.Remove(outfile)

	// Try making hard link instead of copying.
	if err := os.Link(infile, outfile); err == nil {
		return nil // success
	}

	// Failed to create hard link, so try copying content.
	in, err := os.Open(infile)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(outfile)
		}
	}()
	_, err = io.Copy(out, in)
	return err
}

// CopyFile copies infile to outfile (or makes a hard link) and
// writes compressed variants of it if needed.
func (f *FileWriter) CopyFile(outfile, infile string) error {
	if err := os.MkdirAll(filepath.Dir(outfile), 0755); err != nil {
		return err
	}
	if err := copyFile(outfile, infile); err != nil {
		return err
	}
	var g errgroup.Group
	for _, c := range f.compressorsFor(outfile) {
		c := c
		g.Go(func() error {
			in, err := os.Open(infile)
			if err != nil {
				return err
			}
			defer in.Close()
			return writeCompressed(c, outfile, in)
		})
	}
	return g.Wait()
}
