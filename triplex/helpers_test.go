// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import "strings"

// testFiller generates a deterministic pseudo-random sequence over alphabet.
func testFiller(seed uint64, n int, alphabet string) string {
	var b strings.Builder
	x := seed
	for i := 0; i < n; i++ {
		x = (x*1103515245 + 12345) & 0x7fffffff
		b.WriteByte(alphabet[int(x>>16)%len(alphabet)])
	}
	return b.String()
}

func mustReverseComplement(seq string) string {
	rc, err := ReverseComplement(seq)
	if err != nil {
		panic(err)
	}
	return rc
}

// Pieces of a planted triplex.  The layout is
//
//   lowerUp | H | upperUp | upperLoop | rc(upperUp) | W | lowerGap | C | tail
//
// where W = reverse(H), C = rc(W), and lowerGap contains rc(lowerUp).
const (
	testLowerUp   = "GCAU"
	testH         = "CAGGUACCUA"
	testUpperUp   = "GGAC"
	testUpperLoop = "AUUACGAAUCCGUAAGCUACUA"
)

var (
	testW        = Reverse(testH)
	testC        = mustReverseComplement(testW)
	testLowerGap = "CCA" + mustReverseComplement(testLowerUp) + "GUCUA"
	testTail     = testFiller(7, 260, "ACGU")
)

// plantedTriplex builds a sequence holding one triplex with its Hoogsteen arm
// at offset 4.  Offsets of the elements:
//
//   lower stem upstream [0,4)   H [4,14)        upper stem upstream [14,18)
//   upper loop [18,40)          upper stem downstream [40,44)
//   W [44,54)                   lower stem downstream [57,61)
//   lower loop [61,66)          C [66,76)       tail [76,...)
func plantedTriplex(h, tail string) string {
	w := Reverse(h)
	return testLowerUp + h + testUpperUp + testUpperLoop + mustReverseComplement(testUpperUp) +
		w + testLowerGap + mustReverseComplement(w) + tail
}
