// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import "strings"

// findPseudoknot searches for the reverse complement of loop in
// seq[w.End:c.End+opts.PseudoknotSlack].  The window covers the whole Crick
// search region plus opts.PseudoknotSlack bases past the Crick arm.  It
// returns nil if there is no match.
func findPseudoknot(seq, loop string, w, c Span, opts *Opts) (*Span, error) {
	target, err := ReverseComplement(loop)
	if err != nil {
		return nil, err
	}
	start, end := window(seq, w.End, c.End+opts.PseudoknotSlack)
	i := strings.Index(seq[start:end], target)
	if i < 0 {
		return nil, nil
	}
	pk := newSpan(seq, start+i, start+i+len(target))
	return &pk, nil
}
