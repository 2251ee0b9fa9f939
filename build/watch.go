package build

import (
	"log"
	"os"
	"path/filepath"

	"github.com/dchest/razormin/fspoll"
)

// removeStale removes outputs of input files which no longer exist.
func (b *Builder) removeStale(paths []string) {
	inDir := b.inDir()
	for _, path := range paths {
		if _, err := os.Lstat(path); !os.IsNotExist(err) {
			continue
		}
		relname, err := filepath.Rel(inDir, path)
		if err != nil {
			continue
		}
		b.cache.Forget(relname)
		outFile := filepath.Join(b.outDir(), relname)
		for _, name := range []string{outFile, outFile + ".gz", outFile + ".br"} {
			if err := os.Remove(name); err == nil {
				log.Printf("R %s", name)
			}
		}
	}
}

// StartWatching starts polling the input directory and rebuilds
// on every change.
func (b *Builder) StartWatching() error {
	exclude := b.Config.Exclude
	if rel, err := filepath.Rel(b.inDir(), b.outDir()); err == nil {
		// Output directory may be inside input.
		exclude = append(append([]string(nil), exclude...), rel)
	}
	watcher, err := fspoll.Watch(b.inDir(), exclude, 0, 0)
	if err != nil {
		return err
	}
	b.watcher = watcher

	go func() {
		for {
			select {
			case <-watcher.Done():
				return
			case paths := <-watcher.Change:
				log.Printf("W %d changed", len(paths))
				b.removeStale(paths)
				if err := b.Build(); err != nil {
					log.Printf("! build error: %s", err)
				}
			case err := <-watcher.Error:
				log.Println("! watcher error:", err)
			}
		}
	}()

	log.Printf("* Watching for changes.")
	return nil
}

func (b *Builder) StopWatching() {
	if b.watcher != nil {
		b.watcher.Close()
		b.watcher = nil
	}
}
