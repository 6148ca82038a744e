// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"github.com/grailbio/base/log"
)

// resultSet keeps one triplex per Hoogsteen sequence.  Keys keep the order in
// which they were first added; a later triplex with the same key replaces the
// stored one in place.
type resultSet struct {
	index     map[string]int
	triplexes []Triplex
}

// add stores t under t.H.Seq.  It returns true if it replaced an earlier
// triplex.
func (r *resultSet) add(t Triplex) bool {
	if i, ok := r.index[t.H.Seq]; ok {
		r.triplexes[i] = t
		return true
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[t.H.Seq] = len(r.triplexes)
	r.triplexes = append(r.triplexes, t)
	return false
}

// Detect scans seq and returns the triplexes found in it.  The sequence is
// normalized first (see Normalize), so DNA input is accepted.  Offsets in the
// result refer to seq.
//
// The scan tries positions from opts.StartPos up to len(seq) -
// opts.TailReserve (exclusive).  At each position, Hoogsteen arm lengths from
// opts.MaxArmLen down to opts.MinArmLen are tried, and the first length that
// yields a triplex wins; the scan then resumes right after that arm.  Results
// are deduplicated by Hoogsteen sequence, keeping the last triplex found.
//
// Detect fails only if opts are invalid, or if opts.Strict is set and the
// sequence contains a base outside of ACGTU where a complement is needed.
// Counters are added to *stats.
func Detect(seq string, stats *Stats, opts Opts) ([]Triplex, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	seq = Normalize(seq)
	stats.Sequences++
	stats.Bases += len(seq)

	var results resultSet
	limit := len(seq) - opts.TailReserve
	for pos := opts.StartPos; pos < limit; {
		stats.Positions++
		advance := 1
		for size := opts.MaxArmLen; size >= opts.MinArmLen; size-- {
			if pos+size > len(seq) {
				continue
			}
			found, err := assemble(seq, pos, pos+size, stats, &opts)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				continue
			}
			for _, t := range found {
				if results.add(t) {
					stats.Overwrites++
					log.Debug.Printf("triplex: H=[%d,%d) %s replaces an earlier result", t.H.Start, t.H.End, t.H.Seq)
				}
			}
			advance = size
			break
		}
		pos += advance
	}
	return results.triplexes, nil
}

// Scan runs Detect with DefaultOpts.
func Scan(seq string) ([]Triplex, error) {
	var stats Stats
	return Detect(seq, &stats, DefaultOpts)
}
