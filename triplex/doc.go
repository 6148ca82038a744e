// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package triplex finds RNA triple-helix motifs in a single sequence.
//
// A triplex consists of three arms that pair with each other:
//
//   Hoogsteen (H)  seq[H.Start:H.End]
//   Watson (W)     the literal reverse of H, found downstream of H
//   Crick (C)      the reverse complement of W, found downstream of W
//
// plus an upper stem bridging H and W, a lower stem bridging the bases before H
// and the H..C gap, and an optional pseudoknot: a copy of the reverse
// complement of the upper loop found past W.
//
// Detect scans a sequence and returns the structures it found.  All offsets
// are 0-based and half-open.  Detect is pure: it is safe to run any number of
// scans concurrently, one per sequence.
package triplex
