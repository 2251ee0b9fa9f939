// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filters implements text filtering.
//
// A filter takes source text and returns a transformed version of it or an
// error. Filters are created by name from makers registered by this package
// (jsmin, cssmin, js, css, htmlmin, htmljsmin, exec) or by its users.
package filters

import (
	"fmt"
	"sort"
	"sync"
)

// Filter is an interface declaring a filter.
type Filter interface {
	Name() string
	Apply([]byte) ([]byte, error)
}

// Maker is a type of function which accepts arguments
// for filter and returns a new instance of the filter.
type Maker func([]string) (Filter, error)

var (
	makersMu sync.RWMutex
	// makers stores builtin filter makers addressed by their names.
	makers = make(map[string]Maker)
)

// Register registers a new filter maker.
func Register(name string, maker Maker) {
	makersMu.Lock()
	defer makersMu.Unlock()
	makers[name] = maker
}

// Names returns a sorted list of registered filter names.
func Names() []string {
	makersMu.RLock()
	defer makersMu.RUnlock()
	names := make([]string, 0, len(makers))
	for k := range makers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Make creates a new filter by name with the given arguments.
func Make(name string, args []string) (Filter, error) {
	makersMu.RLock()
	maker := makers[name]
	makersMu.RUnlock()
	if maker == nil {
		return nil, fmt.Errorf("filter %s not found", name)
	}
	return maker(args)
}

// FromYAML makes a filter from a YAML value, which is either
// a filter name or an array of name followed by arguments:
//
//	script_minifier: jsmin
//	script_minifier: [js, precision=3, keep-var-names]
//
func FromYAML(line interface{}) (Filter, error) {
	switch x := line.(type) {
	case string:
		return Make(x, nil)
	case []string:
		if len(x) == 0 {
			return nil, fmt.Errorf("failed to parse filter: empty array")
		}
		return Make(x[0], x[1:])
	case []interface{}:
		if len(x) == 0 {
			return nil, fmt.Errorf("failed to parse filter: empty array")
		}
		args := make([]string, len(x))
		for i, v := range x {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("failed to parse filter: not an array of strings")
			}
			args[i] = s
		}
		return Make(args[0], args[1:])
	default:
		return nil, fmt.Errorf("failed to parse filter: not a string or array")
	}
}

// Collection is a collection of filters addressed by some key.
type Collection struct {
	filters map[string]Filter
}

// NewCollection returns a new collection.
func NewCollection() *Collection {
	return &Collection{
		filters: make(map[string]Filter),
	}
}

// AddFromYAML parses a `filters` value (line) and adds corresponding filters.
func (c *Collection) AddFromYAML(key string, line interface{}) error {
	f, err := FromYAML(line)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	c.filters[key] = f
	return nil
}

// Get returns a filter for key.
// It returns nil if the filter wasn't found.
func (c *Collection) Get(key string) Filter {
	return c.filters[key]
}

// ApplyFilter applies a filter found by key to the given string.
// If the filter wasn't found, returns the original string.
func (c *Collection) ApplyFilter(key string, in []byte) (out []byte, err error) {
	f := c.filters[key]
	if f == nil {
		return in, nil
	}
	return f.Apply(in)
}

// noArgs returns an error if args are not empty.
func noArgs(name string, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("filter %s takes no arguments", name)
	}
	return nil
}
