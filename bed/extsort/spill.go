// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package extsort is the external k-way radix sort (spec §4.4): it
// partitions records by chromosome, sorts each chromosome's records by
// (start, end), spills chunks exceeding the memory budget to temp files
// and merges them with a container/heap k-way merge - the binary block
// format and merge loop are a direct generalization of the teacher's
// unikmer/cmd/util-sort.go (sortUnikFile, chunkFileName, codeEntryHeap,
// mergeChunksFile) from a single uint64 k-mer code to a BED interval
// triple plus its preserved tail.
package extsort

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/shenwei356/bedtk/bed"
)

var be = binary.BigEndian

// spill block binary format (spec §6):
//   chrom_id u32, start u32, end u32, tail_len u16, tail bytes
//
// Coordinates are truncated to 32 bits in the spill wire format, matching
// the fixed-width layout spec §6 specifies for temp files; the in-memory
// Record keeps the full int64 range for chunks that never spill.
func writeSpillRecord(w *bufio.Writer, r *bed.Record) error {
	var hdr [14]byte
	be.PutUint32(hdr[0:4], uint32(r.ChromID))
	be.PutUint32(hdr[4:8], uint32(r.Start))
	be.PutUint32(hdr[8:12], uint32(r.End))
	be.PutUint16(hdr[12:14], uint16(len(r.Tail)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(r.Tail) > 0 {
		if _, err := w.Write(r.Tail); err != nil {
			return err
		}
	}
	return nil
}

func readSpillRecord(r *bufio.Reader) (*bed.Record, error) {
	var hdr [14]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err // io.EOF on clean end
	}
	chromID := int32(be.Uint32(hdr[0:4]))
	start := int64(be.Uint32(hdr[4:8]))
	end := int64(be.Uint32(hdr[8:12]))
	tailLen := be.Uint16(hdr[12:14])

	var tail []byte
	if tailLen > 0 {
		tail = make([]byte, tailLen)
		if _, err := io.ReadFull(r, tail); err != nil {
			return nil, fmt.Errorf("truncated spill block: %w", err)
		}
	}
	return &bed.Record{ChromID: chromID, Start: start, End: end, Tail: tail}, nil
}
