// Package stage implements the minifier as a transform stage of a build
// pipeline: it accepts units of content one at a time and emits each one
// transformed.
package stage

import (
	"bytes"
	"context"
	"io"

	"github.com/dchest/razormin/minify"
	"github.com/dchest/razormin/stream"
)

// Unit is a unit of content. A unit with neither Contents nor Stream is
// null. If Stream is set, the unit is a streaming one.
type Unit struct {
	Path     string
	Contents []byte
	Stream   io.Reader
}

func (u *Unit) IsNull() bool { return u.Contents == nil && u.Stream == nil }
func (u *Unit) IsStream() bool { return u.Stream != nil }
func (u *Unit) IsBuffer() bool { return u.Stream == nil && u.Contents != nil }

// ReadAll returns content of the unit, reading the stream if needed.
// It returns nil for null units.
func ReadAll(u *Unit) ([]byte, error) {
	if u.IsStream() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, u.Stream); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return u.Contents, nil
}

// Stage minifies units.
type Stage struct {
	m     *minify.Minifier
	rules []stream.Rule
}

// New returns a new stage which uses the given minifier.
func New(m *minify.Minifier) *Stage {
	return &Stage{m: m, rules: m.StreamRules()}
}

// Transform returns a transformed copy of the unit.
//
// Null units are returned as is. Buffered units are minified. Streaming
// units get a stream which applies only the rules which don't need the
// whole document; their output is not the same as for buffered units.
// Read errors of the original stream are returned by the new stream.
func (s *Stage) Transform(u *Unit) (*Unit, error) {
	if u == nil || u.IsNull() {
		return u, nil
	}
	out := &Unit{Path: u.Path}
	if u.IsStream() {
		out.Stream = stream.NewReader(u.Stream, s.rules...)
		return out, nil
	}
	out.Contents = s.m.Minify(u.Contents)
	return out, nil
}

// Run transforms units received from in and sends them to out, one after
// another, until in is closed or ctx is done. It doesn't close out.
// A unit which is being transformed when ctx is done is transformed to
// completion, but isn't sent.
func (s *Stage) Run(ctx context.Context, in <-chan *Unit, out chan<- *Unit) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-in:
			if !ok {
				return nil
			}
			t, err := s.Transform(u)
			if err != nil {
				return err
			}
			select {
			case out <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
