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

package ops

import (
	"io"
	"strconv"

	"github.com/shenwei356/bedtk/bed"
)

// MergeFlags are merge's flags (spec §4.6, §9's strand-bucket decision).
type MergeFlags struct {
	Distance int64 // -d: merge features up to this far apart (default 0)
	ByStrand bool  // -s: strand is part of the merge key
	Count    bool  // append the number of merged input intervals
}

// Merge implements spec §4.6's merge operator with O(1) memory: it reads
// a single sorted stream and extends or flushes a running current
// interval, grounded directly on the teacher's
// unikmer/cmd/merge.go accumulate-then-flush chunk-merge loop, re-typed
// from concatenating binary k-mer chunks to extending a genomic span.
type Merge struct {
	flags MergeFlags
	out   *Writer

	have     bool
	curChrom []byte
	curStart int64
	curEnd   int64
	curN     int
	curKey   mergeKey
}

// mergeKey is the strand bucket used when ByStrand is set; spec §9
// resolves '.' as its own bucket, distinct from '+'/'-'.
type mergeKey bed.Strand

// NewMerge constructs the merge reducer.
func NewMerge(flags MergeFlags, out *Writer) *Merge {
	return &Merge{flags: flags, out: out}
}

// Run drains src, merging intervals as it goes (no sweep engine needed:
// merge is single-stream, spec §4.5 is only invoked for binary ops).
func (op *Merge) Run(src bed.Source) error {
	for {
		r, err := src.Next()
		if err == io.EOF {
			op.flush()
			return nil
		}
		if err != nil {
			return err
		}
		op.consume(r)
	}
}

func (op *Merge) consume(r *bed.Record) {
	key := mergeKey(bed.StrandUnknown)
	if op.flags.ByStrand {
		key = mergeKey(r.Strand())
	}

	if op.have && bytesEqual(op.curChrom, r.Chrom) && key == op.curKey && r.Start <= op.curEnd+op.flags.Distance {
		if r.End > op.curEnd {
			op.curEnd = r.End
		}
		op.curN++
		return
	}

	op.flush()
	op.have = true
	op.curChrom = append(op.curChrom[:0], r.Chrom...)
	op.curStart = r.Start
	op.curEnd = r.End
	op.curN = 1
	op.curKey = key
}

func (op *Merge) flush() {
	if !op.have {
		return
	}
	if op.flags.Count {
		rec := &bed.Record{Chrom: op.curChrom, Start: op.curStart, End: op.curEnd}
		op.out.RecordWithFields(rec, strconv.Itoa(op.curN))
	} else {
		op.out.Interval(string(op.curChrom), op.curStart, op.curEnd)
	}
	op.have = false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MergedSource wraps src so its records are coalesced into
// non-overlapping, non-adjacent runs per chromosome at distance 0 - the
// same accumulate-then-flush rule as Merge.consume, but pull-based
// instead of Writer-based so an operator like jaccard can sweep over
// the merged stream directly (spec §4.6: "Merge A and B" before
// computing intersection/union).
type MergedSource struct {
	src     bed.Source
	pending *bed.Record // next raw record not yet folded in
	eof     bool
}

// NewMergedSource constructs a MergedSource over src.
func NewMergedSource(src bed.Source) *MergedSource {
	return &MergedSource{src: src}
}

func (m *MergedSource) fill() error {
	if m.pending != nil || m.eof {
		return nil
	}
	r, err := m.src.Next()
	if err == io.EOF {
		m.eof = true
		return nil
	}
	if err != nil {
		return err
	}
	m.pending = r
	return nil
}

// Next implements bed.Source.
func (m *MergedSource) Next() (*bed.Record, error) {
	if err := m.fill(); err != nil {
		return nil, err
	}
	if m.pending == nil {
		return nil, io.EOF
	}
	cur := &bed.Record{Chrom: m.pending.Chrom, ChromID: m.pending.ChromID, Start: m.pending.Start, End: m.pending.End}
	m.pending = nil

	for {
		if err := m.fill(); err != nil {
			return nil, err
		}
		if m.pending == nil || !bytesEqual(cur.Chrom, m.pending.Chrom) || m.pending.Start > cur.End {
			return cur, nil
		}
		if m.pending.End > cur.End {
			cur.End = m.pending.End
		}
		m.pending = nil
	}
}

var _ bed.Source = (*MergedSource)(nil)
