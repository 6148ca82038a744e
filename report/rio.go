// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package report

// This file defines the recordio dump of a scan.  The dump keeps the complete
// Triplex values, so it can be re-rendered into the text formats later without
// rescanning the corpus.

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/triplex/triplex"
)

const (
	// <fileVersionHeader, fileVersion> is stored in the recordio header.
	fileVersionHeader = "triplexversion"
	fileVersion       = "TRIPLEX_V1"
)

// Record is one entry of a recordio dump.
type Record struct {
	// Name is the name of the sequence the triplex was found in.
	Name    string
	Triplex triplex.Triplex
}

// Trailer describes the scan that produced a recordio dump.  It is stored in
// the trailer section of the file.
type Trailer struct {
	// Opts is the options used to scan the sequences.
	Opts triplex.Opts
	// Sequences is the # of sequences scanned.
	Sequences int
	// CorpusDigest is corpus.Digest of the scanned sequences.
	CorpusDigest uint64
}

type rioWriter struct {
	out     file.File
	w       recordio.Writer
	buf     bytes.Buffer
	trailer Trailer
}

// CreateRIO creates a recordio dump at path.  The trailer is written when the
// Writer is closed.
func CreateRIO(ctx context.Context, path string, trailer Trailer) (Writer, error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	return newRIOWriter(ctx, out, trailer), nil
}

func newRIOWriter(ctx context.Context, out file.File, trailer Trailer) *rioWriter {
	recordiozstd.Init()
	w := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(fileVersionHeader, fileVersion)
	w.AddHeader(recordio.KeyTrailer, true)
	return &rioWriter{out: out, w: w, trailer: trailer}
}

func (w *rioWriter) Write(name string, t triplex.Triplex) error {
	w.buf.Reset()
	if err := gob.NewEncoder(&w.buf).Encode(Record{Name: name, Triplex: t}); err != nil {
		return errors.E(err, "encode triplex of", name)
	}
	// Append may retain the slice until the block is flushed.
	w.w.Append(append([]byte(nil), w.buf.Bytes()...))
	return w.w.Err()
}

func (w *rioWriter) Close(ctx context.Context) error {
	var e errors.Once
	w.buf.Reset()
	if err := gob.NewEncoder(&w.buf).Encode(w.trailer); err != nil {
		e.Set(errors.E(err, "encode trailer"))
	} else {
		w.w.SetTrailer(w.buf.Bytes())
	}
	e.Set(w.w.Finish())
	e.Set(w.out.Close(ctx))
	return e.Err()
}

// Reader reads a recordio dump created with the RIO format.
type Reader struct {
	in      file.File
	r       recordio.Scanner
	trailer Trailer
	rec     Record
	err     error
}

// NewReader opens the recordio dump at path.
func NewReader(ctx context.Context, path string) (*Reader, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	recordiozstd.Init()
	r := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	version := ""
	for _, kv := range r.Header() {
		if kv.Key == fileVersionHeader {
			version, _ = kv.Value.(string)
			break
		}
	}
	if version != fileVersion {
		err := r.Err()
		if err == nil {
			err = errors.E(errors.Invalid, path+": not a triplex dump, got version "+version+", expect "+fileVersion)
		}
		_ = in.Close(ctx)
		return nil, err
	}
	rd := &Reader{in: in, r: r}
	if b := r.Trailer(); len(b) > 0 {
		if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&rd.trailer); err != nil {
			_ = in.Close(ctx)
			return nil, errors.E(err, "decode trailer of", path)
		}
	}
	return rd, nil
}

// Trailer returns the description of the scan stored in the file.  This method
// can be called any time.
func (r *Reader) Trailer() Trailer { return r.trailer }

// Scan reads the next record.  It returns false at the end of the file or on
// error.
//
// REQUIRES: Close hasn't been called.
func (r *Reader) Scan() bool {
	if r.err != nil || !r.r.Scan() {
		return false
	}
	r.rec = Record{}
	if err := gob.NewDecoder(bytes.NewReader(r.r.Get().([]byte))).Decode(&r.rec); err != nil {
		r.err = errors.E(err, "decode triplex record")
		return false
	}
	return true
}

// Record yields the current record.
//
// REQUIRES: Last Scan call returned true.
func (r *Reader) Record() Record { return r.rec }

// Close closes the reader and reports any error seen by Scan.  It must be
// called exactly once.
func (r *Reader) Close(ctx context.Context) error {
	var e errors.Once
	e.Set(r.err)
	e.Set(r.r.Err())
	e.Set(r.in.Close(ctx))
	return e.Err()
}

// ReadAll reads every record of the recordio dump at path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	r, err := NewReader(ctx, path)
	if err != nil {
		return nil, err
	}
	var recs []Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	return recs, r.Close(ctx)
}
