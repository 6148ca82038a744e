// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestScanNoTriplex(t *testing.T) {
	found, err := Scan("AAAACCCGGGUUUU" + strings.Repeat("A", 200))
	assert.NoError(t, err)
	expect.EQ(t, len(found), 0)

	found, err = Scan("")
	assert.NoError(t, err)
	expect.EQ(t, len(found), 0)
}

// checkPlanted verifies that tp matches the layout built by plantedTriplex
// with the Hoogsteen arm at offset off.
func checkPlanted(t *testing.T, tp Triplex, off int) {
	span := func(seq string, start, end int) Span {
		return Span{seq, start + off - 4, end + off - 4}
	}
	expect.EQ(t, tp.H, span(testH, 4, 14))
	expect.EQ(t, tp.W, span(testW, 44, 54))
	expect.EQ(t, tp.C, span(testC, 66, 76))
	assert.True(t, tp.UpperStem.HasArms())
	expect.EQ(t, *tp.UpperStem.Upstream, span(testUpperUp, 14, 18))
	expect.EQ(t, *tp.UpperStem.Downstream, span("GUCC", 40, 44))
	expect.EQ(t, tp.UpperStem.Loop, span(testUpperLoop, 18, 40))
	assert.True(t, tp.LowerStem.HasArms())
	expect.EQ(t, *tp.LowerStem.Upstream, span(testLowerUp, 0, 4))
	expect.EQ(t, *tp.LowerStem.Downstream, span("AUGC", 57, 61))
	expect.EQ(t, tp.LowerStem.Loop, span("GUCUA", 61, 66))
}

func TestScanPlanted(t *testing.T) {
	seq := plantedTriplex(testH, testTail)
	var stats Stats
	found, err := Detect(seq, &stats, DefaultOpts)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	tp := found[0]
	checkPlanted(t, tp, 4)
	expect.EQ(t, tp.PseudoknotStatus(), PseudoknotNo)
	expect.EQ(t, tp.PseudoknotStatus().String(), "NO")
	expect.Nil(t, tp.Pseudoknot)

	expect.EQ(t, stats.Sequences, 1)
	expect.EQ(t, stats.Bases, len(seq))
	expect.EQ(t, stats.Triplexes, 1)
	expect.EQ(t, stats.Overwrites, 0)
	expect.EQ(t, stats.Pseudoknots, 0)
	expect.EQ(t, stats.InvalidBaseSkips, 0)
}

func TestScanPseudoknot(t *testing.T) {
	pk := mustReverseComplement(testUpperLoop)
	seq := plantedTriplex(testH, testTail[:40]+pk+testTail[40:])
	found, err := Scan(seq)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	tp := found[0]
	checkPlanted(t, tp, 4)
	expect.EQ(t, tp.PseudoknotStatus(), PseudoknotYes)
	expect.EQ(t, tp.PseudoknotStatus().String(), "YES")
	assert.True(t, tp.Pseudoknot != nil)
	expect.EQ(t, *tp.Pseudoknot, Span{pk, 116, 138})
}

func TestScanLongestNestedArmWins(t *testing.T) {
	// Every prefix of testH down to MinArmLen also pairs with a suffix of W
	// and a prefix of C, so shorter arms at offset 4 are admitted as well.
	seq := plantedTriplex(testH, testTail)
	opts := DefaultOpts
	for size := opts.MinArmLen; size < len(testH); size++ {
		var stats Stats
		found, err := assemble(seq, 4, 4+size, &stats, &opts)
		assert.NoError(t, err)
		assert.EQ(t, len(found), 1, "size %d", size)
		expect.EQ(t, found[0].W, Span{testW[len(testW)-size:], 54 - size, 54})
		expect.EQ(t, found[0].C, Span{testC[:size], 66, 66 + size})
		expect.False(t, found[0].UpperStem.HasArms())
	}

	var stats Stats
	found, err := Detect(seq, &stats, opts)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	checkPlanted(t, found[0], 4)
	// After the 10-base arm at offset 4, the scan resumes at offset 14.  The
	// suffixes of testH starting at 5..13 are never tried.
	expect.EQ(t, stats.Positions, len(seq)-opts.TailReserve-opts.StartPos-(len(testH)-1))
	expect.EQ(t, stats.Triplexes, 1)

	// Trying every offset reports the nested arms at offsets 5, 6, and 7 too.
	var single Stats
	for pos := 5; pos < 14; pos++ {
		for size := opts.MaxArmLen; size >= opts.MinArmLen; size-- {
			nested, err := assemble(seq, pos, pos+size, &single, &opts)
			assert.NoError(t, err)
			if len(nested) > 0 {
				expect.EQ(t, nested[0].H, Span{testH[pos-4:], pos, 14})
				break
			}
		}
	}
	expect.EQ(t, single.Triplexes, 3)
}

func TestScanDNAInput(t *testing.T) {
	seq := strings.ToLower(strings.Replace(plantedTriplex(testH, testTail), "U", "T", -1))
	found, err := Scan(seq)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	checkPlanted(t, found[0], 4)
}

func TestScanDedupKeepsLast(t *testing.T) {
	one := plantedTriplex(testH, testTail)
	var stats Stats
	found, err := Detect(one+one, &stats, DefaultOpts)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	checkPlanted(t, found[0], len(one)+4)
	expect.EQ(t, stats.Triplexes, 2)
	expect.EQ(t, stats.Overwrites, 1)
}

func TestScanDistinctKeepsDiscoveryOrder(t *testing.T) {
	const h2 = "UCCAGGAUGC"
	first := plantedTriplex(testH, testTail)
	found, err := Scan(first + plantedTriplex(h2, testTail))
	assert.NoError(t, err)
	assert.EQ(t, len(found), 2)
	checkPlanted(t, found[0], 4)
	expect.EQ(t, found[1].H, Span{h2, len(first) + 4, len(first) + 14})
}

func TestScanArmlessLowerStem(t *testing.T) {
	w := Reverse(testH)
	seq := testLowerUp + testH + testUpperUp + testUpperLoop + mustReverseComplement(testUpperUp) +
		w + "CCAGUC" + mustReverseComplement(w) + testTail
	found, err := Scan(seq)
	assert.NoError(t, err)
	assert.EQ(t, len(found), 1)
	tp := found[0]
	expect.EQ(t, tp.C, Span{testC, 60, 70})
	expect.False(t, tp.LowerStem.HasArms())
	expect.EQ(t, tp.LowerStem.Loop, Span{"CCAGUC", 54, 60})
}

func TestScanInvalidBase(t *testing.T) {
	loop := testUpperLoop[:10] + "N" + testUpperLoop[11:]
	w := Reverse(testH)
	seq := testLowerUp + testH + testUpperUp + loop + mustReverseComplement(testUpperUp) +
		w + testLowerGap + mustReverseComplement(w) + testTail

	var stats Stats
	found, err := Detect(seq, &stats, DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, len(found), 0)
	expect.True(t, stats.InvalidBaseSkips > 0)

	opts := DefaultOpts
	opts.Strict = true
	_, err = Detect(seq, &stats, opts)
	expect.True(t, errors.Is(errors.Invalid, err), err)
}

func TestDetectInvalidOpts(t *testing.T) {
	opts := DefaultOpts
	opts.MinArmLen = 20
	var stats Stats
	_, err := Detect(plantedTriplex(testH, testTail), &stats, opts)
	expect.True(t, errors.Is(errors.Invalid, err), err)
	expect.EQ(t, stats.Sequences, 0)
}

// checkInvariants verifies the structural properties every reported triplex
// must satisfy.
func checkInvariants(t *testing.T, seq string, found []Triplex, opts Opts) {
	seq = Normalize(seq)
	checkSpan := func(s Span) {
		assert.True(t, 0 <= s.Start && s.Start <= s.End && s.End <= len(seq), "%+v", s)
		expect.EQ(t, s.Seq, seq[s.Start:s.End])
	}
	checkStem := func(s Stem) {
		checkSpan(s.Loop)
		expect.True(t, s.Loop.Len() >= opts.MinLoopLen, "%+v", s)
		expect.EQ(t, s.Upstream == nil, s.Downstream == nil)
		if s.HasArms() {
			checkSpan(*s.Upstream)
			checkSpan(*s.Downstream)
			expect.EQ(t, s.Downstream.Seq, mustReverseComplement(s.Upstream.Seq))
		}
	}
	seen := map[string]bool{}
	for _, tp := range found {
		checkSpan(tp.H)
		checkSpan(tp.W)
		checkSpan(tp.C)
		expect.True(t, tp.H.Start < tp.H.End && tp.H.End <= tp.W.Start && tp.W.Start < tp.W.End &&
			tp.W.End <= tp.C.Start && tp.C.Start < tp.C.End, "%+v", tp)
		expect.True(t, tp.H.Start < len(seq)-opts.TailReserve, "%+v", tp.H)
		expect.EQ(t, tp.W.Seq, Reverse(tp.H.Seq))
		expect.EQ(t, tp.C.Seq, mustReverseComplement(tp.W.Seq))
		checkStem(tp.UpperStem)
		checkStem(tp.LowerStem)
		if tp.Pseudoknot != nil {
			checkSpan(*tp.Pseudoknot)
			expect.EQ(t, tp.PseudoknotStatus(), PseudoknotYes)
			expect.EQ(t, tp.Pseudoknot.Seq, mustReverseComplement(tp.UpperStem.Loop.Seq))
		} else {
			expect.EQ(t, tp.PseudoknotStatus(), PseudoknotNo)
		}
		expect.False(t, seen[tp.H.Seq], "duplicate %s", tp.H.Seq)
		seen[tp.H.Seq] = true
	}
}

func TestScanInvariants(t *testing.T) {
	total := 0
	for seed := uint64(1); seed <= 5; seed++ {
		// A two-letter alphabet makes arm matches common.
		seq := testFiller(seed, 600, "AU")
		found, err := Scan(seq)
		assert.NoError(t, err)
		checkInvariants(t, seq, found, DefaultOpts)
		if seed == 1 {
			expect.EQ(t, len(found), 30)
		}
		total += len(found)
	}
	expect.True(t, total > 0)

	for _, seq := range []string{
		plantedTriplex(testH, testTail),
		plantedTriplex(testH, testTail) + plantedTriplex("UCCAGGAUGC", testTail),
	} {
		found, err := Scan(seq)
		assert.NoError(t, err)
		checkInvariants(t, seq, found, DefaultOpts)
	}
}

func TestScanBoundary(t *testing.T) {
	// The planted triplex starts at offset 4, so it is found only when at
	// least TailReserve bases remain after that position.
	seq := plantedTriplex(testH, testTail)
	opts := DefaultOpts
	opts.TailReserve = len(seq) - 4
	var stats Stats
	found, err := Detect(seq, &stats, opts)
	assert.NoError(t, err)
	expect.EQ(t, len(found), 0)
	expect.EQ(t, stats.Positions, 0)

	opts.TailReserve = len(seq) - 5
	found, err = Detect(seq, &stats, opts)
	assert.NoError(t, err)
	expect.EQ(t, len(found), 1)
}
