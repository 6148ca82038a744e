// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package corpus reads the sequence collections scanned by bio-triplex.  A
// corpus is a list of FASTA files, optionally gzip-compressed, or directories
// holding such files.
package corpus

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/triplex/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// fastaSuffixes lists the file name suffixes picked up from a directory.
var fastaSuffixes = []string{".fa", ".fasta", ".fa.gz", ".fasta.gz"}

// reader is an io.ReadCloser that closes both the (optional) decompressor and
// the underlying file.
type reader struct {
	ctx context.Context
	in  file.File
	gz  *gzip.Reader
	r   io.Reader
}

func (r *reader) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *reader) Close() error {
	once := errors.Once{}
	if r.gz != nil {
		once.Set(r.gz.Close())
	}
	once.Set(r.in.Close(r.ctx))
	return once.Err()
}

// Open opens path for reading.  Gzip files, detected by the path's extension,
// are decompressed on the fly.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	r := &reader{ctx: ctx, in: in, r: in.Reader(ctx)}
	if fileio.DetermineType(path) == fileio.Gzip {
		if r.gz, err = gzip.NewReader(r.r); err != nil {
			_ = in.Close(ctx)
			return nil, errors.E(err, "gunzip", path)
		}
		r.r = r.gz
	}
	return r, nil
}

// Decompress inflates the gzip file src into dst.
func Decompress(ctx context.Context, src, dst string) (err error) {
	in, err := Open(ctx, src)
	if err != nil {
		return err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	out, err := file.Create(ctx, dst)
	if err != nil {
		return errors.E(err, "create", dst)
	}
	defer file.CloseAndReport(ctx, out, &err)
	n, err := io.Copy(out.Writer(ctx), in)
	if err != nil {
		return errors.E(err, "decompress", src)
	}
	log.Printf("corpus: decompressed %s to %s (%d bytes)", src, dst, n)
	return nil
}

func hasFASTASuffix(name string) bool {
	for _, suffix := range fastaSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// listFASTA lists the FASTA files directly under dir, sorted by path.
func listFASTA(ctx context.Context, dir string) ([]string, error) {
	var paths []string
	lister := file.List(ctx, dir, false)
	for lister.Scan() {
		if !lister.IsDir() && hasFASTASuffix(lister.Path()) {
			paths = append(paths, lister.Path())
		}
	}
	if err := lister.Err(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Expand replaces every directory in paths with the FASTA files it contains,
// sorted by name.  Directories may be local or on any registered file scheme.
// Paths with a FASTA suffix, and paths that do not list as a directory of
// FASTA files, are kept as is.
func Expand(ctx context.Context, paths []string) ([]string, error) {
	var result []string
	for _, path := range paths {
		if hasFASTASuffix(path) {
			result = append(result, path)
			continue
		}
		listed, err := listFASTA(ctx, path)
		if err != nil || len(listed) == 0 {
			// Not a directory of FASTA files.  Let file.Open deal with it.
			log.Debug.Printf("corpus: %s is not a FASTA directory (err: %v)", path, err)
			result = append(result, path)
			continue
		}
		result = append(result, listed...)
	}
	return result, nil
}

// ReadFile reads all the records in one FASTA file.
func ReadFile(ctx context.Context, path string) (recs []fasta.Record, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if recs, err = fasta.ReadAll(in); err != nil {
		return nil, errors.E(err, path)
	}
	return recs, nil
}

// Load expands paths and reads every record, in the order of the files and of
// the records within each file.
func Load(ctx context.Context, paths []string) ([]fasta.Record, error) {
	paths, err := Expand(ctx, paths)
	if err != nil {
		return nil, err
	}
	var all []fasta.Record
	for _, path := range paths {
		recs, err := ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		log.Printf("corpus: read %d sequences from %s", len(recs), path)
		all = append(all, recs...)
	}
	return all, nil
}
