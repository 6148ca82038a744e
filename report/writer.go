// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package report persists detected triplexes, one row per triplex, tagged with
// the name of the sequence it was found in.
package report

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"github.com/grailbio/triplex/triplex"
)

// Format is an output file format.
type Format string

const (
	// TSV is tab-separated text with a header line.
	TSV Format = "tsv"
	// TSVBgz is TSV, bgzip-compressed.
	TSVBgz Format = "tsv-bgz"
	// CSV is comma-separated text with a header line.
	CSV Format = "csv"
	// RIO is a zstd-compressed recordio file of gob-encoded Records.  It can be
	// read back by NewReader.  RIO files are created by CreateRIO, which takes
	// the Trailer stored in the file.
	RIO Format = "rio"
)

// ParseFormat converts a -format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case TSV, TSVBgz, CSV, RIO:
		return f, nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("unknown output format %q: expect one of tsv, tsv-bgz, csv, rio", s))
}

// Writer persists triplexes.
type Writer interface {
	// Write adds a triplex found in the sequence named name.
	Write(name string, t triplex.Triplex) error
	// Close flushes and closes the output.  It must be called exactly once.
	Close(ctx context.Context) error
}

// Create creates a Writer for path in one of the text formats.  Parallelism is
// the number of compression goroutines used by TSVBgz.  Use CreateRIO for RIO.
func Create(ctx context.Context, path string, format Format, parallelism int) (Writer, error) {
	if format == RIO {
		return nil, errors.E(errors.Invalid, "rio output needs a trailer; use CreateRIO for", path)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	switch format {
	case TSV, TSVBgz:
		w, err := newTSVWriter(ctx, out, format == TSVBgz, parallelism)
		if err != nil {
			return nil, err
		}
		return w, nil
	case CSV:
		w, err := newCSVWriter(ctx, out)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	_ = out.Close(ctx)
	return nil, errors.E(errors.Invalid, "unknown output format", string(format))
}

type tsvWriter struct {
	out file.File
	bgz *bgzf.Writer // nil unless bgzip-compressed
	w   *tsv.Writer
}

func newTSVWriter(ctx context.Context, out file.File, bgzip bool, parallelism int) (*tsvWriter, error) {
	w := &tsvWriter{out: out}
	if !bgzip {
		w.w = tsv.NewWriter(out.Writer(ctx))
	} else {
		if parallelism <= 0 {
			parallelism = 1
		}
		w.bgz = bgzf.NewWriter(out.Writer(ctx), parallelism)
		w.w = tsv.NewWriter(w.bgz)
	}
	if err := w.writeRow(Header); err != nil {
		_ = w.Close(ctx)
		return nil, err
	}
	return w, nil
}

func (w *tsvWriter) writeRow(row []string) error {
	for _, cell := range row {
		w.w.WriteString(cell)
	}
	return w.w.EndLine()
}

func (w *tsvWriter) Write(name string, t triplex.Triplex) error {
	return w.writeRow(Flatten(name, t))
}

func (w *tsvWriter) Close(ctx context.Context) error {
	var e errors.Once
	e.Set(w.w.Flush())
	if w.bgz != nil {
		e.Set(w.bgz.Close())
	}
	e.Set(w.out.Close(ctx))
	return e.Err()
}

type csvWriter struct {
	out file.File
	w   *csv.Writer
}

func newCSVWriter(ctx context.Context, out file.File) (*csvWriter, error) {
	w := &csvWriter{out: out, w: csv.NewWriter(out.Writer(ctx))}
	if err := w.w.Write(Header); err != nil {
		_ = w.Close(ctx)
		return nil, err
	}
	return w, nil
}

func (w *csvWriter) Write(name string, t triplex.Triplex) error {
	return w.w.Write(Flatten(name, t))
}

func (w *csvWriter) Close(ctx context.Context) error {
	var e errors.Once
	w.w.Flush()
	e.Set(w.w.Error())
	e.Set(w.out.Close(ctx))
	return e.Err()
}
