// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package triplex

// Stats counts what happened during one or more scans.
type Stats struct {
	// Sequences is the # of sequences scanned.
	Sequences int
	// Bases is the total length of the sequences scanned.
	Bases int
	// Positions is the # of Hoogsteen start positions tried.
	Positions int
	// ArmCandidates is the # of (H, W, C) arm triples found.
	ArmCandidates int
	// InvalidBaseSkips is the # of arm triples dropped because a complement
	// had to be computed over a base outside of ACGU.
	InvalidBaseSkips int
	// StemRejects is the # of arm triples dropped because the upper or the
	// lower stem was missing.
	StemRejects int
	// Triplexes is the # of triplexes admitted, before deduplication.
	Triplexes int
	// Overwrites is the # of admitted triplexes that replaced an earlier
	// result with the same Hoogsteen sequence.
	Overwrites int
	// Pseudoknots is the # of admitted triplexes with a pseudoknot.
	Pseudoknots int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Sequences += o.Sequences
	s.Bases += o.Bases
	s.Positions += o.Positions
	s.ArmCandidates += o.ArmCandidates
	s.InvalidBaseSkips += o.InvalidBaseSkips
	s.StemRejects += o.StemRejects
	s.Triplexes += o.Triplexes
	s.Overwrites += o.Overwrites
	s.Pseudoknots += o.Pseudoknots
	return s
}
