// Package stream implements literal find/replace over byte streams.
//
// It is the fallback used for units that arrive as readers: only rules that
// don't need to see the whole document can be applied this way.
package stream

import (
	"bytes"
	"io"
	"sort"

	"golang.org/x/text/transform"
)

// Rule replaces every occurrence of Old with New.
type Rule struct {
	Old []byte
	New []byte
}

// Replacer is a transform.Transformer which applies rules to its input.
// At each position the longest matching rule wins; replacements are not
// rescanned.
type Replacer struct {
	rules []Rule
	first [256]bool
}

// NewReplacer returns a new replacer for the given rules.
// Rules with empty Old are ignored.
func NewReplacer(rules ...Rule) *Replacer {
	r := &Replacer{rules: make([]Rule, 0, len(rules))}
	for _, v := range rules {
		if len(v.Old) == 0 {
			continue
		}
		r.rules = append(r.rules, v)
		r.first[v.Old[0]] = true
	}
	sort.SliceStable(r.rules, func(i, j int) bool {
		return len(r.rules[i].Old) > len(r.rules[j].Old)
	})
	return r
}

// NewReader returns a reader which reads from r with rules applied.
func NewReader(r io.Reader, rules ...Rule) io.Reader {
	return transform.NewReader(r, NewReplacer(rules...))
}

// Reset implements transform.Transformer. Replacer has no state.
func (r *Replacer) Reset() {}

// Transform implements transform.Transformer.
func (r *Replacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if r.first[c] {
			rule, partial := r.match(src[nSrc:], atEOF)
			if partial {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if rule != nil {
				if len(dst)-nDst < len(rule.New) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += copy(dst[nDst:], rule.New)
				nSrc += len(rule.Old)
				continue
			}
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// match returns the longest rule matching at the start of b. If b is
// a proper prefix of some rule's Old and more input may follow, it
// reports partial so that the caller waits for more bytes.
func (r *Replacer) match(b []byte, atEOF bool) (rule *Rule, partial bool) {
	for i := range r.rules {
		old := r.rules[i].Old
		if len(b) < len(old) {
			if !atEOF && bytes.HasPrefix(old, b) {
				return nil, true
			}
			continue
		}
		if bytes.Equal(b[:len(old)], old) {
			return &r.rules[i], false
		}
	}
	return nil, false
}
