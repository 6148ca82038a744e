// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"github.com/grailbio/base/log"
)

// Span is a located substring of the scanned sequence.
//
// INVARIANT: Seq == seq[Start:End], 0 <= Start <= End <= len(seq).
type Span struct {
	Seq        string
	Start, End int
}

// newSpan creates a Span for seq[start:end].
//
// REQUIRES: 0 <= start <= end <= len(seq).
func newSpan(seq string, start, end int) Span {
	if start < 0 || end < start || end > len(seq) {
		log.Panicf("invalid span [%d,%d) for sequence of length %d", start, end, len(seq))
	}
	return Span{Seq: seq[start:end], Start: start, End: end}
}

// Len returns the number of bases in the span.
func (s Span) Len() int { return s.End - s.Start }

// Stem is a loop, optionally flanked by a pair of complementary arms.  When
// the arms are present, Downstream.Seq is the reverse complement of
// Upstream.Seq.
type Stem struct {
	Loop       Span
	Upstream   *Span
	Downstream *Span
}

// HasArms checks if the stem has a pair of flanking arms.
func (s Stem) HasArms() bool { return s.Upstream != nil && s.Downstream != nil }

// PseudoknotStatus tells whether a pseudoknot pairing was found for a triplex.
type PseudoknotStatus uint8

const (
	// PseudoknotNo means no copy of the reverse-complemented upper loop was
	// found downstream.
	PseudoknotNo PseudoknotStatus = iota
	// PseudoknotYes means Triplex.Pseudoknot is set.
	PseudoknotYes
)

// String returns "YES" or "NO".
func (s PseudoknotStatus) String() string {
	if s == PseudoknotYes {
		return "YES"
	}
	return "NO"
}

// Triplex is a detected triple-helix structure.
//
// INVARIANT: H.Start < H.End <= W.Start < W.End <= C.Start < C.End.
type Triplex struct {
	// H, W, C are the Hoogsteen, Watson, and Crick arms.  W.Seq is the reverse
	// of H.Seq, and C.Seq is the reverse complement of W.Seq.
	H, W, C Span
	// UpperStem bridges H.End and W.Start.
	UpperStem Stem
	// LowerStem pairs the bases just before H with a region between W.End and
	// C.Start.
	LowerStem Stem
	// Pseudoknot is the reverse complement of UpperStem.Loop, found between
	// W.End and a fixed distance past C.End.  Nil if not found.
	Pseudoknot *Span
}

// PseudoknotStatus returns PseudoknotYes iff t.Pseudoknot is set.
func (t Triplex) PseudoknotStatus() PseudoknotStatus {
	if t.Pseudoknot != nil {
		return PseudoknotYes
	}
	return PseudoknotNo
}
