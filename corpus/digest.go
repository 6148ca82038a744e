// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package corpus

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/triplex/encoding/fasta"
)

// Digest computes a fingerprint of recs.  It depends on the names and the
// sequences of the records, and on their order.
func Digest(recs []fasta.Record) uint64 {
	h := seahash.New()
	var n [8]byte
	for _, r := range recs {
		for _, s := range []string{r.Name, r.Seq} {
			binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
			h.Write(n[:])
			h.Write(gunsafe.StringToBytes(s))
		}
	}
	return h.Sum64()
}
