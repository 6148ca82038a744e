// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import "strings"

// findUpperStem looks for the longest stem between the Hoogsteen and the
// Watson arms.  The upstream arm starts at h.End, and the downstream arm must
// end exactly at w.Start.  Arm lengths from gap/2 down to opts.MinStemArmLen
// are tried.
//
// If an arm pair is found, the loop is the region between the arms.
// Otherwise the whole gap becomes an armless loop.  Returns nil if the loop is
// shorter than opts.MinLoopLen.
func findUpperStem(seq string, h, w Span, opts *Opts) (*Stem, error) {
	gap := w.Start - h.End
	for size := gap / 2; size >= opts.MinStemArmLen; size-- {
		up := newSpan(seq, h.End, h.End+size)
		want, err := ReverseComplement(up.Seq)
		if err != nil {
			return nil, err
		}
		if seq[w.Start-size:w.Start] != want {
			continue
		}
		down := newSpan(seq, w.Start-size, w.Start)
		return newStem(seq, up.End, down.Start, &up, &down, opts), nil
	}
	return newStem(seq, h.End, w.Start, nil, nil, opts), nil
}

// findLowerStem looks for the longest stem whose upstream arm ends right
// before the Hoogsteen arm, and whose downstream arm is anywhere in
// seq[w.End:c.Start].  Arm lengths from gap/2 down to opts.MinStemArmLen are
// tried, where gap is the W-C distance.  Arms that would start before the
// sequence are skipped.
//
// If an arm pair is found, the loop is [downstream.End, c.Start).  Otherwise
// the whole W-C gap becomes an armless loop.  Returns nil if the loop is
// shorter than opts.MinLoopLen.
func findLowerStem(seq string, h, w, c Span, opts *Opts) (*Stem, error) {
	gap := c.Start - w.End
	for size := gap / 2; size >= opts.MinStemArmLen; size-- {
		if h.Start-size < 0 {
			continue
		}
		up := newSpan(seq, h.Start-size, h.Start)
		target, err := ReverseComplement(up.Seq)
		if err != nil {
			return nil, err
		}
		i := strings.Index(seq[w.End:c.Start], target)
		if i < 0 {
			continue
		}
		down := newSpan(seq, w.End+i, w.End+i+size)
		return newStem(seq, down.End, c.Start, &up, &down, opts), nil
	}
	return newStem(seq, w.End, c.Start, nil, nil, opts), nil
}

// newStem materializes a stem with loop seq[loopStart:loopEnd], or returns nil
// if the loop is too short.
func newStem(seq string, loopStart, loopEnd int, up, down *Span, opts *Opts) *Stem {
	if loopEnd-loopStart < opts.MinLoopLen {
		return nil
	}
	return &Stem{Loop: newSpan(seq, loopStart, loopEnd), Upstream: up, Downstream: down}
}
