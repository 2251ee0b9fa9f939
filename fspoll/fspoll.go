// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fspoll implements a primitive polling-based filesystem watcher.
package fspoll

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dchest/razormin/utils"
)

type Watcher struct {
	dir           string
	excludeGlobs  []string
	state         map[string]os.FileInfo
	interval      time.Duration
	sleepInterval time.Duration
	closed        chan struct{}

	// Change receives sorted lists of paths which were added,
	// modified or removed since the previous check.
	Change chan []string
	Error  chan error
}

const (
	DefaultInterval = 1 * time.Second
	SleepAfter      = 5 * time.Minute
)

// Watch polls the given directory and subdirectories and files inside it,
// excluding the given globs, for changes with the given interval.
//
// When there was no change for 5 minutes, interval changes to
// sleepInterval (interval * 5 by default). It's back to normal
// interval if a change is detected. If sleepInterval is negative,
// don't sleep.
func Watch(dir string, excludeGlobs []string, interval, sleepInterval time.Duration) (w *Watcher, err error) {
	if interval == 0 {
		interval = DefaultInterval
	}
	if sleepInterval < 0 {
		sleepInterval = interval
	} else if sleepInterval == 0 {
		sleepInterval = interval * 5
	}
	w = &Watcher{
		dir:           dir,
		excludeGlobs:  excludeGlobs,
		interval:      interval,
		sleepInterval: sleepInterval,
		Change:        make(chan []string),
		Error:         make(chan error),
		closed:        make(chan struct{}),
	}
	// Get initial state
	w.state, err = w.getState()
	if err != nil {
		return nil, err
	}
	go w.start()
	return w, nil
}

func (w *Watcher) start() {
	lastChangeTime := time.Now()
	currentInterval := w.interval
	for {
		select {
		case <-time.After(currentInterval):
		case <-w.closed:
			return
		}
		changed, err := w.check()
		var send chan<- []string
		var sendErr chan<- error
		switch {
		case err != nil:
			sendErr = w.Error
		case len(changed) > 0:
			lastChangeTime = time.Now()
			currentInterval = w.interval
			send = w.Change
		case time.Since(lastChangeTime) > SleepAfter:
			currentInterval = w.sleepInterval
		}
		if send == nil && sendErr == nil {
			continue
		}
		select {
		case send <- changed:
		case sendErr <- err:
		case <-w.closed:
			return
		}
	}
}

func (w *Watcher) getState() (map[string]os.FileInfo, error) {
	ns := make(map[string]os.FileInfo)
	err := filepath.Walk(w.dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(w.dir, path)
		if err != nil {
			return err
		}
		if rel != "." {
			matched, err := utils.MatchAny(w.excludeGlobs, rel)
			if err != nil {
				return err
			}
			if matched {
				// Skip excluded path
				if fi.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		ns[path] = fi
		return nil
	})
	return ns, err
}

func hasChanged(ofi, nfi os.FileInfo) bool {
	if ofi.Mode() != nfi.Mode() {
		return true
	}
	if ofi.IsDir() {
		return false
	}
	return !ofi.ModTime().Equal(nfi.ModTime()) || ofi.Size() != nfi.Size()
}

// check returns paths that changed since the last check
// and makes the new state current.
func (w *Watcher) check() (changed []string, err error) {
	ns, err := w.getState()
	if err != nil {
		return nil, err
	}
	for path, nfi := range ns {
		ofi, ok := w.state[path]
		if !ok || hasChanged(ofi, nfi) {
			changed = append(changed, path)
		}
	}
	for path := range w.state {
		if _, ok := ns[path]; !ok {
			changed = append(changed, path)
		}
	}
	w.state = ns
	sort.Strings(changed)
	return changed, nil
}

// Done returns a channel which is closed when the watcher is closed.
func (w *Watcher) Done() <-chan struct{} {
	return w.closed
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.closed)
}
