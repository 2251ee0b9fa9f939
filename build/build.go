// Package build minifies a directory of templates into an output directory.
//
// Files with configured extensions go through the minifier, files with an
// extension filter (for example, `.css: cssmin`) through that filter, and
// everything else is hard-linked or copied.
package build

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v1"

	"github.com/dchest/razormin/filewriter"
	"github.com/dchest/razormin/filters"
	"github.com/dchest/razormin/fspoll"
	"github.com/dchest/razormin/hashcache"
	"github.com/dchest/razormin/minify"
	"github.com/dchest/razormin/stage"
	"github.com/dchest/razormin/utils"
)

type Builder struct {
	BaseDir string
	Config  *Config

	stage   *stage.Stage
	filters *filters.Collection
	writer  *filewriter.FileWriter
	cache   *hashcache.Cache

	mu                  sync.Mutex // serializes builds
	watcher             *fspoll.Watcher
	cleanBeforeBuilding bool
}

// Open reads configuration from configFile (relative to dir, or
// ConfigFileName if empty) and returns a new Builder.
func Open(dir, configFile string) (b *Builder, err error) {
	if configFile == "" {
		configFile = ConfigFileName
	}
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(dir, configFile)
	}
	conf, err := ReadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return New(dir, conf)
}

// New returns a new Builder for the given config.
func New(dir string, conf *Config) (b *Builder, err error) {
	b = &Builder{BaseDir: dir, Config: conf}
	m, err := minify.New(&conf.Minify)
	if err != nil {
		return nil, err
	}
	b.stage = stage.New(m)
	b.filters = filters.NewCollection()
	for extension, line := range conf.Filters {
		if err := b.filters.AddFromYAML(extension, line); err != nil {
			return nil, fmt.Errorf("filters: %w", err)
		}
	}
	if b.writer, err = filewriter.New(conf.Compress); err != nil {
		return nil, err
	}
	cacheFile := conf.Cache
	if cacheFile != "" && !filepath.IsAbs(cacheFile) {
		cacheFile = filepath.Join(dir, cacheFile)
	}
	if b.cache, err = hashcache.Open(cacheFile); err != nil {
		return nil, err
	}
	salt, err := yaml.Marshal(conf)
	if err != nil {
		return nil, err
	}
	b.cache.SetSalt(salt)
	return b, nil
}

func (b *Builder) inDir() string { return filepath.Join(b.BaseDir, b.Config.Input) }
func (b *Builder) outDir() string { return filepath.Join(b.BaseDir, b.Config.Output) }

// isIgnoredFile returns true if the file at relname should be skipped.
func (b *Builder) isIgnoredFile(relname string) (bool, error) {
	return utils.MatchAny(b.Config.Exclude, relname)
}

// ProcessFile minifies, filters or copies the file at relname
// (relative to the input directory) into the output directory.
func (b *Builder) ProcessFile(relname string) error {
	inFile := filepath.Join(b.inDir(), relname)
	outFile := filepath.Join(b.outDir(), relname)

	minified := utils.HasFileExt(relname, b.Config.Extensions)
	filter := b.filters.Get(filepath.Ext(relname))
	if !minified && filter == nil {
		if err := b.writer.CopyFile(outFile, inFile); err != nil {
			return err
		}
		log.Printf("C %s → %s", relname, filepath.Join(b.Config.Output, relname))
		return nil
	}

	in, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}
	if b.cache.Seen(relname, in) {
		if _, err := os.Stat(outFile); err == nil {
			log.Printf("S %s", relname)
			return nil
		}
	}
	var out []byte
	if minified {
		u, err := b.stage.Transform(&stage.Unit{Path: relname, Contents: in})
		if err == nil {
			out, err = stage.ReadAll(u)
		}
		if err != nil {
			b.cache.Forget(relname)
			return err
		}
	} else {
		out, err = filter.Apply(in)
		if err != nil {
			b.cache.Forget(relname)
			return fmt.Errorf("%s: %s: %w", relname, filter.Name(), err)
		}
	}
	if err := b.writer.WriteFile(outFile, out); err != nil {
		b.cache.Forget(relname)
		return err
	}
	marker := "M"
	if !minified {
		marker = "F"
	}
	log.Printf("%s %s → %s (%s)", marker, relname, filepath.Join(b.Config.Output, relname), utils.SizeChange(len(in), len(out)))
	return nil
}

func (b *Builder) runBuild() error {
	if b.cleanBeforeBuilding {
		if err := b.Clean(); err != nil {
			return err
		}
	}
	inDir, outDir := b.inDir(), b.outDir()
	err := filepath.Walk(inDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() && path == outDir {
			return filepath.SkipDir
		}
		relname, err := filepath.Rel(inDir, path)
		if err != nil {
			return err
		}
		if relname == "." {
			return nil
		}
		ignored, err := b.isIgnoredFile(relname)
		if err != nil {
			return err
		}
		if ignored {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			return nil
		}
		return b.ProcessFile(relname)
	})
	if err != nil {
		return err
	}
	return b.cache.Save()
}

// Build processes all input files.
func (b *Builder) Build() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := time.Now()
	defer func() {
		log.Printf("* Build in %s", time.Since(t))
	}()
	return b.runBuild()
}

// Clean removes the output directory and the cache file.
func (b *Builder) Clean() error {
	log.Printf("* Cleaning.")
	if err := os.RemoveAll(b.outDir()); err != nil {
		return err
	}
	if b.Config.Cache != "" {
		cacheFile := b.Config.Cache
		if !filepath.IsAbs(cacheFile) {
			cacheFile = filepath.Join(b.BaseDir, cacheFile)
		}
		if err := os.Remove(cacheFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SetCleanBeforeBuilding sets whether the output directory
// is removed before every build.
func (b *Builder) SetCleanBeforeBuilding(clean bool) {
	b.cleanBeforeBuilding = clean
}
