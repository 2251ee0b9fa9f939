// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package utils contains utility functions.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v1"
)

// UnmarshallYAMLFile reads YAML file and unmarshalls it into data.
func UnmarshallYAMLFile(filename string, data interface{}) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, data); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// HasFileExt returns true if filename has one of the given extensions.
// Extensions must start with dot. Comparison is case-insensitive.
func HasFileExt(filename string, extensions []string) bool {
	ext := filepath.Ext(filename)
	for _, v := range extensions {
		if strings.EqualFold(v, ext) {
			return true
		}
	}
	return false
}

// MatchAny returns true if the path or its base name matches
// one of the given globs.
func MatchAny(globs []string, path string) (bool, error) {
	base := filepath.Base(path)
	for _, glob := range globs {
		matched, err := filepath.Match(glob, path)
		if err != nil {
			return false, err
		}
		if !matched {
			if matched, err = filepath.Match(glob, base); err != nil {
				return false, err
			}
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// SizeChange describes the change from `from` to `to` bytes,
// for example "12 kB → 9.1 kB, -24%".
func SizeChange(from, to int) string {
	s := fmt.Sprintf("%s → %s", humanize.Bytes(uint64(from)), humanize.Bytes(uint64(to)))
	if from == 0 {
		return s
	}
	return fmt.Sprintf("%s, %+.0f%%", s, float64(to-from)*100/float64(from))
}
