// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

/*
bio-triplex scans RNA (or DNA) sequences for triple-helix structures: a
Hoogsteen arm H, its reverse W downstream, and the reverse complement of W
(the Crick arm C) further downstream, held together by an upper and a lower
stem.  Each triplex found is written as one row of the output file.

Example 1: scan every FASTA file in a directory, write TSV.

    bio-triplex -out triplexes.tsv ./genomes

Example 2: scan a gzipped corpus, keep a recordio dump next to the CSV.

    bio-triplex -format csv -out triplexes.csv -rio-output triplexes.rio corpus.fa.gz

Example 3: re-render a dump in another format without rescanning.

    bio-triplex -rio-input triplexes.rio -format tsv-bgz -out triplexes.tsv.gz
*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/triplex/corpus"
	"github.com/grailbio/triplex/dispatch"
	"github.com/grailbio/triplex/report"
	"github.com/grailbio/triplex/triplex"
)

type triplexFlags struct {
	outPath      string
	format       string
	rioInputPath string
	rioOutPath   string
	decompressTo string
	parallelism  int
}

// decompressInputs expands paths and inflates every gzipped file into dir.
// The returned list names the plain files in place of the gzipped ones.
func decompressInputs(ctx context.Context, paths []string, dir string) ([]string, error) {
	paths, err := corpus.Expand(ctx, paths)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(paths))
	for i, path := range paths {
		if fileio.DetermineType(path) != fileio.Gzip {
			result[i] = path
			continue
		}
		dst := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), ".gz"))
		if err := corpus.Decompress(ctx, path, dst); err != nil {
			return nil, err
		}
		result[i] = dst
	}
	return result, nil
}

// scanCorpus loads the sequences in paths and scans them all.
func scanCorpus(ctx context.Context, paths []string, flags triplexFlags, opts triplex.Opts) ([]report.Record, report.Trailer, error) {
	trailer := report.Trailer{Opts: opts}
	var err error
	if flags.decompressTo != "" {
		if paths, err = decompressInputs(ctx, paths, flags.decompressTo); err != nil {
			return nil, trailer, err
		}
	}
	recs, err := corpus.Load(ctx, paths)
	if err != nil {
		return nil, trailer, err
	}
	trailer.Sequences = len(recs)
	trailer.CorpusDigest = corpus.Digest(recs)
	log.Printf("Stats: read %d sequences from %d path(s), digest %016x", len(recs), len(paths), trailer.CorpusDigest)
	results, stats, err := dispatch.Run(ctx, recs, dispatch.Opts{Parallelism: flags.parallelism, Triplex: opts})
	if err != nil {
		return nil, trailer, err
	}
	log.Printf("Stats: %+v", stats)
	var out []report.Record
	nFailed := 0
	for _, r := range results {
		if r.Err != nil {
			nFailed++
			continue
		}
		for _, t := range r.Triplexes {
			out = append(out, report.Record{Name: r.Name, Triplex: t})
		}
	}
	if nFailed > 0 {
		log.Error.Printf("%d sequence(s) were not scanned; see the errors above", nFailed)
	}
	return out, trailer, nil
}

func writeRecords(ctx context.Context, w report.Writer, path string, recs []report.Record) (err error) {
	defer func() {
		if e := w.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	for _, r := range recs {
		if err = w.Write(r.Name, r.Triplex); err != nil {
			return errors.E(err, "write", path)
		}
	}
	log.Printf("Wrote %d triplexes to %s", len(recs), path)
	return nil
}

// DetectTriplexes runs the scan over paths, or reads a previous dump when
// flags.rioInputPath is set, and writes the result files.
func DetectTriplexes(ctx context.Context, paths []string, flags triplexFlags, opts triplex.Opts) error {
	format, err := report.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if flags.outPath == "" {
		return errors.E(errors.Invalid, "-out must be set")
	}
	if err = opts.Validate(); err != nil {
		return err
	}
	var (
		recs    []report.Record
		trailer report.Trailer
	)
	if flags.rioInputPath == "" {
		if len(paths) == 0 {
			return errors.E(errors.Invalid, "no input sequence files")
		}
		if recs, trailer, err = scanCorpus(ctx, paths, flags, opts); err != nil {
			return err
		}
		if flags.rioOutPath != "" {
			w, err := report.CreateRIO(ctx, flags.rioOutPath, trailer)
			if err != nil {
				return err
			}
			if err = writeRecords(ctx, w, flags.rioOutPath, recs); err != nil {
				return err
			}
		}
	} else {
		if len(paths) > 0 {
			return errors.E(errors.Invalid, "-rio-input cannot be combined with input sequence files")
		}
		if recs, trailer, err = readDump(ctx, flags.rioInputPath); err != nil {
			return err
		}
	}
	var w report.Writer
	if format == report.RIO {
		w, err = report.CreateRIO(ctx, flags.outPath, trailer)
	} else {
		w, err = report.Create(ctx, flags.outPath, format, flags.parallelism)
	}
	if err != nil {
		return err
	}
	return writeRecords(ctx, w, flags.outPath, recs)
}

// readDump reads the triplexes stored by an earlier run.
func readDump(ctx context.Context, path string) ([]report.Record, report.Trailer, error) {
	r, err := report.NewReader(ctx, path)
	if err != nil {
		return nil, report.Trailer{}, err
	}
	trailer := r.Trailer()
	log.Printf("%s: scan of %d sequences, digest %016x, opts %+v", path, trailer.Sequences, trailer.CorpusDigest, trailer.Opts)
	var recs []report.Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	if err := r.Close(ctx); err != nil {
		return nil, trailer, err
	}
	log.Printf("Read %d triplexes from %s", len(recs), path)
	return recs, trailer, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] fastapath...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [OPTIONS] -rio-input path\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	flags := triplexFlags{}
	flag.StringVar(&flags.outPath, "out", "triplexes.tsv", "Output path.")
	flag.StringVar(&flags.format, "format", string(report.TSV), "Output format; 'tsv', 'tsv-bgz', 'csv', and 'rio' supported")
	flag.StringVar(&flags.rioInputPath, "rio-input", "", "If nonempty, skip scanning and re-render the triplexes stored in this recordio file, created by an earlier run with -rio-output or -format=rio.")
	flag.StringVar(&flags.rioOutPath, "rio-output", "", "If nonempty, also dump the triplexes to this recordio file.")
	flag.StringVar(&flags.decompressTo, "decompress-to", "", "If nonempty, gzipped inputs are first decompressed into this directory, and the plain files are scanned.")
	flag.IntVar(&flags.parallelism, "parallelism", 0, "Maximum number of sequences scanned at the same time; 0 = runtime.NumCPU()")

	opts := triplex.DefaultOpts
	flag.IntVar(&opts.StartPos, "start-pos", triplex.DefaultOpts.StartPos, "First Hoogsteen start position tried")
	flag.IntVar(&opts.TailReserve, "tail-reserve", triplex.DefaultOpts.TailReserve, "Hoogsteen start positions stop this many bases before the sequence end")
	flag.IntVar(&opts.MaxArmLen, "max-arm-len", triplex.DefaultOpts.MaxArmLen, "Longest arm length tried")
	flag.IntVar(&opts.MinArmLen, "min-arm-len", triplex.DefaultOpts.MinArmLen, "Shortest arm length tried")
	flag.IntVar(&opts.WatsonSlack, "watson-slack", triplex.DefaultOpts.WatsonSlack, "Watson arms are searched within (arm length + this) bases after H")
	flag.IntVar(&opts.CrickSlack, "crick-slack", triplex.DefaultOpts.CrickSlack, "Crick arms are searched within (arm length + this) bases after W")
	flag.IntVar(&opts.PseudoknotSlack, "pseudoknot-slack", triplex.DefaultOpts.PseudoknotSlack, "Pseudoknots are searched up to this many bases after C")
	flag.IntVar(&opts.MinStemArmLen, "min-stem-arm-len", triplex.DefaultOpts.MinStemArmLen, "Shortest stem arm length tried")
	flag.IntVar(&opts.MinLoopLen, "min-loop-len", triplex.DefaultOpts.MinLoopLen, "Shortest stem loop accepted")
	flag.BoolVar(&opts.Strict, "strict", triplex.DefaultOpts.Strict, "If true, a base outside of ACGU(T) fails the scan of the sequence instead of skipping the candidate")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	start := time.Now()
	if err := DetectTriplexes(ctx, flag.Args(), flags, opts); err != nil {
		if errors.Is(errors.Invalid, err) {
			log.Fatalf("%v", err)
		}
		log.Panicf("%v", err)
	}
	log.Printf("All done in %v", time.Since(start))
}
