// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"github.com/grailbio/base/log"
)

// assemble builds every triplex whose Hoogsteen arm is seq[hStart:hEnd].
// Candidates without both an upper and a lower stem are dropped.  A candidate
// that hits a base outside of ACGU is dropped too, unless opts.Strict is set,
// in which case the error is returned.
//
// REQUIRES: seq is normalized, 0 <= hStart < hEnd <= len(seq).
func assemble(seq string, hStart, hEnd int, stats *Stats, opts *Opts) ([]Triplex, error) {
	h := newSpan(seq, hStart, hEnd)
	skip := func(err error) error {
		if opts.Strict {
			return err
		}
		stats.InvalidBaseSkips++
		log.Debug.Printf("triplex: skip candidate H=[%d,%d): %v", h.Start, h.End, err)
		return nil
	}

	var result []Triplex
	for _, w := range findWatson(seq, h, opts) {
		c, ok, err := findCrick(seq, w, opts)
		if err != nil {
			if err = skip(err); err != nil {
				return nil, err
			}
			continue
		}
		if !ok {
			continue
		}
		stats.ArmCandidates++
		upper, err := findUpperStem(seq, h, w, opts)
		if err != nil {
			if err = skip(err); err != nil {
				return nil, err
			}
			continue
		}
		lower, err := findLowerStem(seq, h, w, c, opts)
		if err != nil {
			if err = skip(err); err != nil {
				return nil, err
			}
			continue
		}
		if upper == nil || lower == nil {
			stats.StemRejects++
			continue
		}
		pk, err := findPseudoknot(seq, upper.Loop.Seq, w, c, opts)
		if err != nil {
			if err = skip(err); err != nil {
				return nil, err
			}
			continue
		}
		stats.Triplexes++
		if pk != nil {
			stats.Pseudoknots++
		}
		result = append(result, Triplex{
			H:          h,
			W:          w,
			C:          c,
			UpperStem:  *upper,
			LowerStem:  *lower,
			Pseudoknot: pk,
		})
	}
	return result, nil
}
