// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts controls the search windows used by Detect.
type Opts struct {
	// StartPos is the first position tried as the start of a Hoogsteen arm.  It
	// also bounds the longest possible lower-stem arm.
	StartPos int
	// TailReserve is the number of bases at the end of the sequence that are
	// never used as the start of a Hoogsteen arm.
	TailReserve int
	// MaxArmLen and MinArmLen bound the Hoogsteen arm length.  Longer arms are
	// tried first.
	MaxArmLen, MinArmLen int
	// WatsonSlack is added to the arm length to get the size of the window
	// after H that is searched for the Watson arm.
	WatsonSlack int
	// CrickSlack is added to the arm length to get the size of the window after
	// W that is searched for the Crick arm.
	CrickSlack int
	// PseudoknotSlack is the number of bases past C.End included in the
	// pseudoknot search window.
	PseudoknotSlack int
	// MinStemArmLen is the shortest stem arm tried.
	MinStemArmLen int
	// MinLoopLen is the shortest loop for which a stem is materialized.
	MinLoopLen int
	// Strict makes Detect fail when a complement is computed over a base
	// outside of ACGU.  By default, such a candidate is skipped.
	Strict bool
}

// DefaultOpts are the standard screening parameters.
var DefaultOpts = Opts{
	StartPos:        4,
	TailReserve:     200,
	MaxArmLen:       15,
	MinArmLen:       7,
	WatsonSlack:     101,
	CrickSlack:      100,
	PseudoknotSlack: 250,
	MinStemArmLen:   3,
	MinLoopLen:      3,
}

// Validate checks that the options describe a usable search.
func (o Opts) Validate() error {
	check := func(ok bool, format string, args ...interface{}) error {
		if ok {
			return nil
		}
		return errors.E(errors.Invalid, fmt.Sprintf("triplex opts: "+format, args...))
	}
	once := errors.Once{}
	once.Set(check(o.StartPos >= 0, "negative StartPos %d", o.StartPos))
	once.Set(check(o.TailReserve >= 0, "negative TailReserve %d", o.TailReserve))
	once.Set(check(o.MinArmLen >= 1, "MinArmLen %d must be positive", o.MinArmLen))
	once.Set(check(o.MaxArmLen >= o.MinArmLen, "MaxArmLen %d < MinArmLen %d", o.MaxArmLen, o.MinArmLen))
	once.Set(check(o.WatsonSlack >= 0 && o.CrickSlack >= 0 && o.PseudoknotSlack >= 0,
		"negative slack (watson %d, crick %d, pseudoknot %d)", o.WatsonSlack, o.CrickSlack, o.PseudoknotSlack))
	once.Set(check(o.MinStemArmLen >= 1, "MinStemArmLen %d must be positive", o.MinStemArmLen))
	once.Set(check(o.MinLoopLen >= 1, "MinLoopLen %d must be positive", o.MinLoopLen))
	return once.Err()
}
