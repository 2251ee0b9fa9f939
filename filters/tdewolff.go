package filters

// `js` and `css` minify JavaScript and CSS with tdewolff/minify.
//
// Arguments:
//
//	precision=N      number of significant digits kept in numbers (0 keeps all)
//	keep-var-names   (js only) don't rename local variables

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

func init() {
	Register("js", func(args []string) (Filter, error) {
		m := &js.Minifier{}
		for _, a := range args {
			switch k, v := splitArg(a); k {
			case "precision":
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("filter js: bad precision %q", v)
				}
				m.Precision = n
			case "keep-var-names":
				m.KeepVarNames = true
			default:
				return nil, fmt.Errorf("filter js: unknown argument %q", a)
			}
		}
		return newTdewolff("js", "application/javascript", m), nil
	})
	Register("css", func(args []string) (Filter, error) {
		m := &css.Minifier{}
		for _, a := range args {
			switch k, v := splitArg(a); k {
			case "precision":
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("filter css: bad precision %q", v)
				}
				m.Precision = n
			default:
				return nil, fmt.Errorf("filter css: unknown argument %q", a)
			}
		}
		return newTdewolff("css", "text/css", m), nil
	})
}

func splitArg(a string) (key, value string) {
	if i := strings.IndexByte(a, '='); i >= 0 {
		return a[:i], a[i+1:]
	}
	return a, ""
}

type tdewolffFilter struct {
	name      string
	mediatype string
	m         *minify.M
}

func newTdewolff(name, mediatype string, mf minify.Minifier) *tdewolffFilter {
	m := minify.New()
	m.Add(mediatype, mf)
	return &tdewolffFilter{name: name, mediatype: mediatype, m: m}
}

func (f *tdewolffFilter) Name() string { return f.name }

func (f *tdewolffFilter) Apply(in []byte) (out []byte, err error) {
	var buf bytes.Buffer
	if err := f.m.Minify(f.mediatype, &buf, bytes.NewReader(in)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
