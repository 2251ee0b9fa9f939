// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/dchest/razormin/build"
	"github.com/dchest/razormin/filters"
	"github.com/dchest/razormin/minify"
	"github.com/dchest/razormin/stage"
)

var (
	fDir        = flag.String("C", ".", "project directory")
	fConfig     = flag.String("config", build.ConfigFileName, "config file, relative to project directory")
	fNoClean    = flag.Bool("noclean", false, "don't delete output directory before building")
	fStream     = flag.Bool("stream", false, "(pipe) process input as a stream")
	fCPUProfile = flag.String("cpuprofile", "", "(debug) write CPU profile to file")
)

var Usage = func() {
	fmt.Fprintf(os.Stderr, `usage: razormin command [options]

Commands:
  build  - minify input directory into output directory
  watch  - build, then rebuild on changes
  clean  - remove output directory and cache
  pipe   - minify stdin to stdout

Filters: %s

Options:
`, strings.Join(filters.Names(), ", "))
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = Usage

	if len(os.Args) < 2 {
		flag.Usage()
		return
	}
	command := os.Args[1]
	os.Args = os.Args[1:]

	flag.Parse()

	if *fCPUProfile != "" {
		f, err := os.Create(*fCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if command == "pipe" {
		if err := pipe(os.Stdout, os.Stdin); err != nil {
			log.Fatalf("! %s", err)
		}
		return
	}

	b, err := build.Open(*fDir, *fConfig)
	if err != nil {
		log.Fatalf("! Cannot open project: %s", err)
	}
	b.SetCleanBeforeBuilding(!*fNoClean)

	switch command {
	case "build":
		if err := b.Build(); err != nil {
			log.Fatalf("! build error: %s", err)
		}
	case "watch":
		if err := b.Build(); err != nil {
			log.Printf("! build error: %s", err)
		}
		// Rebuilds must not remove unchanged outputs.
		b.SetCleanBeforeBuilding(false)
		if err := b.StartWatching(); err != nil {
			log.Fatalf("! Cannot start watcher: %s", err)
		}
		log.Printf("Watching for changes. Press Ctrl+C to quit.")
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
		b.StopWatching()
	case "clean":
		if err := b.Clean(); err != nil {
			log.Fatalf("! clean error: %s", err)
		}
	default:
		log.Printf("! unknown command %s", command)
		flag.Usage()
		os.Exit(2)
	}
}

// pipe minifies r into w using options from the config file, if it exists.
func pipe(w io.Writer, r io.Reader) error {
	configFile := *fConfig
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(*fDir, configFile)
	}
	conf, err := build.ReadConfig(configFile)
	if err != nil {
		return err
	}
	m, err := minify.New(&conf.Minify)
	if err != nil {
		return err
	}
	s := stage.New(m)
	u := &stage.Unit{Path: "stdin"}
	if *fStream {
		u.Stream = r
	} else {
		if u.Contents, err = io.ReadAll(r); err != nil {
			return err
		}
	}
	out, err := s.Transform(u)
	if err != nil {
		return err
	}
	if out.IsStream() {
		_, err = io.Copy(w, out.Stream)
		return err
	}
	_, err = w.Write(out.Contents)
	return err
}
