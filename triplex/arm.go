// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import "strings"

// window returns the offset of seq[start:end] after clipping both ends to the
// sequence.
func window(seq string, start, end int) (int, int) {
	if end > len(seq) {
		end = len(seq)
	}
	if start > end {
		start = end
	}
	return start, end
}

// findWatson lists the Watson arm candidates for Hoogsteen arm h: every
// non-overlapping occurrence of reverse(h.Seq) in
// seq[h.End:h.End+len(h)+opts.WatsonSlack], leftmost first.
func findWatson(seq string, h Span, opts *Opts) []Span {
	pattern := Reverse(h.Seq)
	wStart, wEnd := window(seq, h.End, h.End+len(pattern)+opts.WatsonSlack)
	var matches []Span
	for off := wStart; off+len(pattern) <= wEnd; {
		i := strings.Index(seq[off:wEnd], pattern)
		if i < 0 {
			break
		}
		start := off + i
		matches = append(matches, newSpan(seq, start, start+len(pattern)))
		off = start + len(pattern)
	}
	return matches
}

// findCrick finds the first occurrence of the reverse complement of w.Seq in
// seq[w.End:w.End+len(w)+opts.CrickSlack].  It returns false if there is none.
// It returns an error if w contains a base outside of ACGU.
func findCrick(seq string, w Span, opts *Opts) (Span, bool, error) {
	pattern, err := ReverseComplement(w.Seq)
	if err != nil {
		return Span{}, false, err
	}
	wStart, wEnd := window(seq, w.End, w.End+len(pattern)+opts.CrickSlack)
	i := strings.Index(seq[wStart:wEnd], pattern)
	if i < 0 {
		return Span{}, false, nil
	}
	return newSpan(seq, wStart+i, wStart+i+len(pattern)), true, nil
}
