// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dispatch scans many sequences in parallel.  Each sequence is scanned
// by one worker; workers share nothing but the read-only input records.
package dispatch

import (
	"context"
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/triplex/encoding/fasta"
	"github.com/grailbio/triplex/triplex"
)

// Opts controls Run.
type Opts struct {
	// Parallelism is the max # of sequences scanned at the same time.  Zero
	// means runtime.NumCPU().
	Parallelism int
	// Triplex is passed to triplex.Detect for every sequence.
	Triplex triplex.Opts
}

// DefaultOpts scans with triplex.DefaultOpts on all CPUs.
var DefaultOpts = Opts{Triplex: triplex.DefaultOpts}

// Result is the outcome of scanning one record.
type Result struct {
	// Name is the record name.
	Name string
	// Triplexes lists the structures found, in discovery order.
	Triplexes []triplex.Triplex
	// Stats is the scan stats of this record.
	Stats triplex.Stats
	// Err is set if the scan of this record failed.  A failure does not affect
	// the other records.
	Err error
}

// Run scans every record.  The i'th result corresponds to recs[i].  It
// returns an error only if ctx is canceled; per-record failures are reported
// in Result.Err.  The returned Stats is the sum over all records.
func Run(ctx context.Context, recs []fasta.Record, opts Opts) ([]Result, triplex.Stats, error) {
	var total triplex.Stats
	if len(recs) == 0 {
		return nil, total, nil
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(recs) {
		parallelism = len(recs)
	}
	log.Printf("dispatch: scanning %d sequences with %d workers", len(recs), parallelism)
	results := make([]Result, len(recs))
	err := traverse.Each(parallelism, func(jobIdx int) error {
		for i := jobIdx; i < len(recs); i += parallelism {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scanRecord(recs[i], opts.Triplex)
		}
		return nil
	})
	if err != nil {
		return nil, total, err
	}
	nFailed := 0
	for _, r := range results {
		total = total.Merge(r.Stats)
		if r.Err != nil {
			nFailed++
		}
	}
	if nFailed > 0 {
		log.Error.Printf("dispatch: %d of %d sequences failed", nFailed, len(recs))
	}
	return results, total, nil
}

func scanRecord(rec fasta.Record, opts triplex.Opts) Result {
	log.Debug.Printf("Processing %s", rec.Name)
	r := Result{Name: rec.Name}
	r.Triplexes, r.Err = triplex.Detect(rec.Seq, &r.Stats, opts)
	if r.Err != nil {
		log.Error.Printf("%s: %v", rec.Name, r.Err)
		return r
	}
	if len(r.Triplexes) > 0 {
		log.Printf("Found %d result(s) for %s", len(r.Triplexes), rec.Name)
	}
	return r
}
