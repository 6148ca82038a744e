// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"fmt"

	"github.com/grailbio/base/errors"
	gunsafe "github.com/grailbio/base/unsafe"
)

// invalidBase marks bytes outside of the RNA alphabet in rnaComplementTable.
const invalidBase = byte(0)

// rnaComplementTable maps A<->U, C<->G.  Everything else maps to invalidBase.
var rnaComplementTable = func() (t [256]byte) {
	t['A'] = 'U'
	t['U'] = 'A'
	t['C'] = 'G'
	t['G'] = 'C'
	return
}()

// dnaToRNATable uppercases its input and maps T to U.
var dnaToRNATable = func() (t [256]byte) {
	for i := range t {
		ch := byte(i)
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch == 'T' {
			ch = 'U'
		}
		t[i] = ch
	}
	return
}()

func invalidBaseError(ch byte, off int) error {
	return errors.E(errors.Invalid, fmt.Sprintf("invalid base %q at offset %d: expect one of A, C, G, U", ch, off))
}

// ComplementBase returns the Watson-Crick partner of an RNA base.  It returns
// an errors.Invalid error for any byte other than 'A', 'C', 'G', 'U'.
func ComplementBase(b byte) (byte, error) {
	c := rnaComplementTable[b]
	if c == invalidBase {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("invalid base %q: expect one of A, C, G, U", b))
	}
	return c, nil
}

// ReverseComplement reverses seq and complements each base.  The input must
// be in the RNA alphabet; see Normalize.  On an invalid base it returns an
// errors.Invalid error that names the offending offset within seq.
func ReverseComplement(seq string) (string, error) {
	n := len(seq)
	buf := make([]byte, n)
	for idx, invIdx := 0, n-1; idx != n; idx, invIdx = idx+1, invIdx-1 {
		c := rnaComplementTable[seq[invIdx]]
		if c == invalidBase {
			return "", invalidBaseError(seq[invIdx], invIdx)
		}
		buf[idx] = c
	}
	return gunsafe.BytesToString(buf), nil
}

// Reverse returns seq in reverse order.
func Reverse(seq string) string {
	n := len(seq)
	buf := make([]byte, n)
	for idx, invIdx := 0, n-1; idx != n; idx, invIdx = idx+1, invIdx-1 {
		buf[idx] = seq[invIdx]
	}
	return gunsafe.BytesToString(buf)
}

// Normalize uppercases seq and replaces T with U, so that DNA input can be
// scanned in the RNA alphabet.  Other bytes are passed through unchanged (after
// uppercasing); they are reported as invalid only if a complement is later
// computed over them.
func Normalize(seq string) string {
	buf := make([]byte, len(seq))
	for i, ch := range gunsafe.StringToBytes(seq) {
		buf[i] = dnaToRNATable[ch]
	}
	return gunsafe.BytesToString(buf)
}
