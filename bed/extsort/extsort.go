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

package extsort

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/twotwotwo/sorts"

	"github.com/shenwei356/bedtk/bed"
)

// Options configures the external sort.
type Options struct {
	Interner     *bed.Interner
	Mode         bed.SortKeyMode
	MemoryBudget int64 // max records held in memory per chunk before spilling
	Unique       bool  // dedup identical (chrom, start, end) triples
	NumCPUs      int
	TmpDir       string // per-run spill subdirectory, caller-owned
}

// Sorter accumulates records, spilling chunks to TmpDir when the budget
// is exceeded, then exposes the fully-merged sorted stream via Finish.
// Grounded on unikmer/cmd/sort.go's in-memory accumulate-then-sort.Sort
// path for the small-input case, and unikmer/cmd/util-sort.go's
// chunk-file + heap-merge path once the budget is exceeded.
type Sorter struct {
	opt    Options
	buf    []*bed.Record
	chunks []string
	seq    int
}

// NewSorter creates a Sorter. TmpDir must already exist; the caller (the
// driver) owns its lifecycle, including cleanup on cancellation (spec §5).
func NewSorter(opt Options) *Sorter {
	if opt.MemoryBudget <= 0 {
		opt.MemoryBudget = 2_000_000
	}
	return &Sorter{opt: opt, buf: make([]*bed.Record, 0, opt.MemoryBudget)}
}

// Add appends r to the current in-memory chunk, interning its chromosome
// if needed, spilling to disk if the budget is exceeded.
func (s *Sorter) Add(r *bed.Record) error {
	if r.ChromID < 0 {
		id, err := s.opt.Interner.Intern(r.Chrom)
		if err != nil {
			return err
		}
		r.ChromID = id
	}
	s.buf = append(s.buf, r)
	if int64(len(s.buf)) >= s.opt.MemoryBudget {
		return s.spill()
	}
	return nil
}

// sortBuf sorts s.buf in place (or, for the radix path, replaces it with
// a freshly ordered slice). The default key (start, end) is sorted by
// bed.RadixSortStartEnd's LSD radix passes over the packed 64-bit key;
// any record whose coordinates don't fit that key, or any alternate key
// mode (size, name-only), falls back to the comparator-based sort the
// teacher itself uses via twotwotwo/sorts.
func (s *Sorter) sortBuf() {
	if s.opt.Mode == bed.KeyStartEnd {
		if sorted, ok := bed.RadixSortStartEnd(s.buf, s.opt.Interner.Len()); ok {
			s.buf = sorted
			return
		}
	}

	cs := bed.NewCodeSlice(s.buf, s.opt.Mode)
	if s.opt.NumCPUs > 1 && len(s.buf) > 1<<14 {
		// Parallel quicksort across NumCPUs worker goroutines, grounded
		// on common.go's sorts.MaxProcs = opt.NumCPUs; sorts.Quicksort(...).
		sorts.MaxProcs = s.opt.NumCPUs
		sorts.Quicksort(cs)
	} else {
		sort.Stable(cs)
	}
}

func (s *Sorter) spill() error {
	if len(s.buf) == 0 {
		return nil
	}
	s.sortBuf()

	s.seq++
	path := filepath.Join(s.opt.TmpDir, fmt.Sprintf("chunk_%06d.bedspill", s.seq))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fail to create spill chunk %s: %w", path, err)
	}
	w := bufio.NewWriterSize(f, os.Getpagesize())

	var last *bed.Record
	for _, r := range s.buf {
		if s.opt.Unique && last != nil && sameTriple(last, r) {
			continue
		}
		if err := writeSpillRecord(w, r); err != nil {
			f.Close()
			return fmt.Errorf("fail to write spill chunk %s: %w", path, err)
		}
		last = r
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.chunks = append(s.chunks, path)
	s.buf = s.buf[:0]
	return nil
}

func sameTriple(a, b *bed.Record) bool {
	return a.ChromID == b.ChromID && a.Start == b.Start && a.End == b.End
}

// Finish flushes any buffered records and returns a Source over the fully
// sorted, merged stream. If nothing ever spilled, the merge degenerates
// to returning the in-memory sorted slice directly (no temp files
// touched at all for inputs that fit the budget).
func (s *Sorter) Finish() (bed.Source, error) {
	if len(s.chunks) == 0 {
		s.sortBuf()
		if s.opt.Unique {
			s.buf = dedup(s.buf)
		}
		return &sliceSource{records: s.buf}, nil
	}
	if err := s.spill(); err != nil {
		return nil, err
	}
	return newChunkMerger(s.chunks, s.opt)
}

// Cleanup removes any spill files created; called by the driver on
// normal completion or on cancellation (spec §5).
func (s *Sorter) Cleanup() {
	for _, c := range s.chunks {
		os.Remove(c)
	}
}

func dedup(records []*bed.Record) []*bed.Record {
	if len(records) == 0 {
		return records
	}
	out := records[:1]
	for _, r := range records[1:] {
		if !sameTriple(out[len(out)-1], r) {
			out = append(out, r)
		}
	}
	return out
}

type sliceSource struct {
	records []*bed.Record
	i       int
}

func (s *sliceSource) Next() (*bed.Record, error) {
	if s.i >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

// --- k-way merge over spilled chunk files -------------------------------

type mergeEntry struct {
	chunkIdx int
	rec      *bed.Record
}

type mergeHeap struct {
	entries []*mergeEntry
	mode    bed.SortKeyMode
}

func (h *mergeHeap) Len() int { return len(h.entries) }
func (h *mergeHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}
func (h *mergeHeap) Less(i, j int) bool {
	a, b := h.entries[i].rec, h.entries[j].rec
	if a.ChromID != b.ChromID {
		return a.ChromID < b.ChromID
	}
	switch h.mode {
	case bed.KeySizeAsc:
		if la, lb := a.Len(), b.Len(); la != lb {
			return la < lb
		}
	case bed.KeySizeDesc:
		if la, lb := a.Len(), b.Len(); la != lb {
			return la > lb
		}
	case bed.KeyNameOnly:
		// Each chunk keeps input order within a chromosome, and earlier
		// chunks hold earlier input.
		return h.entries[i].chunkIdx < h.entries[j].chunkIdx
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	// Stable tiebreak: lower chunk index was written first.
	return h.entries[i].chunkIdx < h.entries[j].chunkIdx
}
func (h *mergeHeap) Push(x interface{}) { h.entries = append(h.entries, x.(*mergeEntry)) }
func (h *mergeHeap) Pop() interface{} {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries = h.entries[:n-1]
	return e
}

// chunkMerger is the k-way loser-tree (container/heap min-heap) merge
// over the spilled chunk files, grounded directly on
// unikmer/cmd/util-sort.go's mergeChunksFile/codeEntryHeap.
type chunkMerger struct {
	opt     Options
	files   []*os.File
	readers []*bufio.Reader
	h       *mergeHeap
	last    *bed.Record
	haveAny bool
}

func newChunkMerger(chunkPaths []string, opt Options) (*chunkMerger, error) {
	m := &chunkMerger{opt: opt, h: &mergeHeap{mode: opt.Mode}}
	for i, p := range chunkPaths {
		f, err := os.Open(p)
		if err != nil {
			m.closeAll()
			return nil, fmt.Errorf("fail to open spill chunk %s: %w", p, err)
		}
		m.files = append(m.files, f)
		r := bufio.NewReaderSize(f, os.Getpagesize())
		m.readers = append(m.readers, r)
		rec, err := readSpillRecord(r)
		if err == io.EOF {
			continue
		}
		if err != nil {
			m.closeAll()
			return nil, err
		}
		heap.Push(m.h, &mergeEntry{chunkIdx: i, rec: rec})
	}
	return m, nil
}

func (m *chunkMerger) closeAll() {
	for _, f := range m.files {
		f.Close()
	}
}

// Next pops the smallest record across all chunks and refills from that
// chunk's reader, implementing the stable k-way merge; with Unique it
// also performs the final cross-chunk dedup pass.
func (m *chunkMerger) Next() (*bed.Record, error) {
	for {
		if m.h.Len() == 0 {
			m.closeAll()
			return nil, io.EOF
		}
		e := heap.Pop(m.h).(*mergeEntry)
		rec := e.rec

		next, err := readSpillRecord(m.readers[e.chunkIdx])
		if err == nil {
			heap.Push(m.h, &mergeEntry{chunkIdx: e.chunkIdx, rec: next})
		} else if err != io.EOF {
			m.closeAll()
			return nil, err
		}

		if m.opt.Unique && m.haveAny && sameTriple(m.last, rec) {
			continue
		}
		m.haveAny = true
		m.last = rec
		if m.opt.Interner != nil {
			rec.Chrom = []byte(m.opt.Interner.Name(rec.ChromID))
		}
		return rec, nil
	}
}
