// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package report

import (
	"strconv"

	"github.com/grailbio/triplex/triplex"
)

// Header lists the report columns, in the order Flatten produces them.
var Header = []string{
	"filename",
	"Hoogsteen Strand", "H Start Index", "H End Index",
	"Crick Strand", "C Start Index", "C End Index",
	"Watson Strand", "W Start Index", "W End Index",
	"Upper Loop Sequence", "Upper Loop Start Index", "Upper Loop End Index",
	"Lower Loop Sequence", "Lower Loop Start Index", "Lower Loop End Index",
	"Lower Stem (downstream) Sequence", "Lower Stem (downstream) Start Index", "Lower Stem (downstream) End Index",
	"Lower Stem (upstream) Sequence", "Lower Stem (upstream) Start Index", "Lower Stem (upstream) End Index",
	"Upper Stem (downstream) Sequence", "Upper Stem (downstream) Start Index", "Upper Stem (downstream) End Index",
	"Upper Stem (upstream) Sequence", "Upper Stem (upstream) Start Index", "Upper Stem (upstream) End Index",
	"Pseudoknot Status", "Pseudoknot Sequence", "Pseudoknot Start Index", "Pseudoknot End Index",
}

// Flatten converts t, found in the sequence named name, into one report row.
// The result has one cell per Header column.
//
// Both the start and the end index of every span are shifted by one, so a
// span [s,e) is reported as (s+1, e+1).  A missing span yields three empty
// cells.
func Flatten(name string, t triplex.Triplex) []string {
	row := make([]string, 0, len(Header))
	row = append(row, name)
	row = appendSpan(row, &t.H)
	row = appendSpan(row, &t.C)
	row = appendSpan(row, &t.W)
	row = appendSpan(row, &t.UpperStem.Loop)
	row = appendSpan(row, &t.LowerStem.Loop)
	row = appendSpan(row, t.LowerStem.Downstream)
	row = appendSpan(row, t.LowerStem.Upstream)
	row = appendSpan(row, t.UpperStem.Downstream)
	row = appendSpan(row, t.UpperStem.Upstream)
	row = append(row, t.PseudoknotStatus().String())
	return appendSpan(row, t.Pseudoknot)
}

func appendSpan(row []string, s *triplex.Span) []string {
	if s == nil {
		return append(row, "", "", "")
	}
	return append(row, s.Seq, strconv.Itoa(s.Start+1), strconv.Itoa(s.End+1))
}
