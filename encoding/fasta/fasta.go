// Package fasta parses multi-record FASTA data into (name, sequence) records.
// FASTA files consist of a number of named sequences that may be interrupted
// by newlines.  For example:
//
// >ENST00000279783.3|OR8K1|chr11:56346039-56346998:1051|960
// ACGTAC
// GAGGAC
// GCG
// >chr8 A viral sequence
// ACGT
//
// The record name is the whole header line after '>', with trailing
// whitespace removed, so '>chr8 A viral sequence' becomes 'chr8 A viral
// sequence'.  Records with an empty sequence are dropped.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Record is one named sequence.
type Record struct {
	Name string
	Seq  string
}

// Scanner reads records one at a time.  Thread compatible.
//
// Example:
//   sc := fasta.NewScanner(r)
//   for sc.Scan() {
//     rec := sc.Record()
//     ...
//   }
//   if err := sc.Err(); err != nil { ... }
type Scanner struct {
	sc *bufio.Scanner

	name    string
	hasName bool
	seq     strings.Builder
	rec     Record
	err     error
	done    bool
}

// NewScanner creates a Scanner that reads FASTA data from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, bufferInitSize)
	return &Scanner{sc: sc}
}

// take moves the pending record into s.rec.  It returns false if the pending
// record is empty.
func (s *Scanner) take() bool {
	if !s.hasName || s.seq.Len() == 0 {
		return false
	}
	s.rec = Record{Name: s.name, Seq: s.seq.String()}
	s.seq.Reset()
	return true
}

// Scan reads the next record.  It returns false at the end of the input or on
// error.  Check Err after Scan returns false.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.sc.Scan() {
		line := strings.TrimRight(s.sc.Text(), " \t\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			ok := s.take()
			s.name, s.hasName = line[1:], true
			if ok {
				return true
			}
			continue
		}
		if !s.hasName {
			s.err = errors.Errorf("malformed FASTA file: sequence data before the first header")
			s.done = true
			return false
		}
		s.seq.WriteString(line)
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrap(err, "couldn't read FASTA data")
		return false
	}
	return s.take()
}

// Record returns the record read by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first error encountered.
func (s *Scanner) Err() error { return s.err }

// ReadAll reads all the records from r, in the order of appearance.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	sc := NewScanner(r)
	for sc.Scan() {
		recs = append(recs, sc.Record())
	}
	return recs, sc.Err()
}
