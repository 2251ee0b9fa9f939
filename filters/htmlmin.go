// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

import (
	"github.com/dchest/htmlmin"
)

// `htmlmin` is a primitive not-so-correct HTML minimizer filter.
// `htmljsmin` is htmlmin which also minifies inline scripts and styles.

func init() {
	Register("htmlmin", func(args []string) (Filter, error) {
		if err := noArgs("htmlmin", args); err != nil {
			return nil, err
		}
		return &HTMLMin{name: "htmlmin", opts: &htmlmin.Options{}}, nil
	})
	Register("htmljsmin", func(args []string) (Filter, error) {
		if err := noArgs("htmljsmin", args); err != nil {
			return nil, err
		}
		return &HTMLMin{
			name: "htmljsmin",
			opts: &htmlmin.Options{MinifyScripts: true, MinifyStyles: true},
		}, nil
	})
}

type HTMLMin struct {
	name string
	opts *htmlmin.Options
}

func (f *HTMLMin) Name() string { return f.name }

func (f *HTMLMin) Apply(in []byte) (out []byte, err error) {
	return htmlmin.Minify(in, f.opts)
}
