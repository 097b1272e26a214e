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

package bed

// SortKeyMode selects the alternate sort keys of spec §4.4, beyond the
// default (start, end) within a chromosome.
type SortKeyMode int

// Sort key modes.
const (
	KeyStartEnd   SortKeyMode = iota // default: ascending (start, end)
	KeySizeAsc                       // ascending interval size
	KeySizeDesc                      // descending interval size
	KeyNameOnly                      // chrom-name-only, stable on remainder
)

// PackKey packs (start, end) into the 64-bit LSD-radix-sortable key of
// spec §4.4: (start<<32)|(end&0xFFFFFFFF). Both fields are truncated to
// uint32, so RadixSortStartEnd falls back to a comparator sort
// whenever a record's coordinates don't fit - the common case in
// genomic data fits comfortably in uint32 per-chromosome coordinates.
func PackKey(start, end int64) uint64 {
	return (uint64(uint32(start)) << 32) | uint64(uint32(end))
}

func fitsPackedKey(r *Record) bool {
	return r.Start >= 0 && r.Start <= 0xFFFFFFFF && r.End >= 0 && r.End <= 0xFFFFFFFF
}

// RadixSortStartEnd implements spec §4.4's default sort key: records are
// first stably bucketed by ChromID (ChromID runs 0..numChroms-1, so a
// single counting-sort pass suffices - no name comparison is ever
// needed, matching the Interner's read-only-after-construction
// contract), then each chromosome's run is sorted by the packed
// (start, end) key via four LSD radix passes over 16-bit digits, each
// pass a stable counting sort so ties retain their input order exactly
// as a comparator-based stable sort would. Returns nil, false if any
// record's coordinates don't fit PackKey, so the caller can fall back
// to CodeSlice + sort.Stable/sorts.Quicksort.
func RadixSortStartEnd(records []*Record, numChroms int) ([]*Record, bool) {
	if len(records) < 2 {
		return records, true
	}
	for _, r := range records {
		if !fitsPackedKey(r) {
			return nil, false
		}
	}

	starts := make([]int, numChroms+1)
	for _, r := range records {
		starts[r.ChromID+1]++
	}
	for i := 1; i <= numChroms; i++ {
		starts[i] += starts[i-1]
	}
	cursor := make([]int, numChroms)
	copy(cursor, starts[:numChroms])
	out := make([]*Record, len(records))
	for _, r := range records {
		out[cursor[r.ChromID]] = r
		cursor[r.ChromID]++
	}

	for c := 0; c < numChroms; c++ {
		lo, hi := starts[c], starts[c+1]
		if hi-lo > 1 {
			radixSortPackedKey(out[lo:hi])
		}
	}
	return out, true
}

// radixSortPackedKey sorts run in place by PackKey(Start, End) using
// four stable counting-sort passes over successive 16-bit digits, LSB
// first, so ties at each pass retain the order the previous pass left
// them in.
func radixSortPackedKey(run []*Record) {
	buf := make([]*Record, len(run))
	src, dst := run, buf
	var count [1<<16 + 1]int

	for shift := uint(0); shift < 64; shift += 16 {
		for i := range count {
			count[i] = 0
		}
		for _, r := range src {
			d := uint16(PackKey(r.Start, r.End) >> shift)
			count[d+1]++
		}
		for i := 1; i < len(count); i++ {
			count[i] += count[i-1]
		}
		for _, r := range src {
			d := uint16(PackKey(r.Start, r.End) >> shift)
			dst[count[d]] = r
			count[d]++
		}
		src, dst = dst, src
	}
	// four passes (even) leave the sorted result back in src == run's
	// backing array; src and run share storage so nothing to copy back.
}

// CodeSlice sorts Records by chromosome id, then by the selected key
// mode, stable on input order for ties - the in-memory counterpart to the
// external sort's merge phase, grounded on the teacher's
// sort.Sort(unikmer.CodeSlice(m)) pattern in unikmer/cmd/sort.go.
type CodeSlice struct {
	Records []*Record
	Mode    SortKeyMode
	seq     []int // original input order, for stability under sort.Sort
}

// NewCodeSlice wraps records for in-place sorting, recording original
// positions so the comparator can break ties on input order exactly like
// sort.Stable would, without paying for a stable sort when mode doesn't
// need it.
func NewCodeSlice(records []*Record, mode SortKeyMode) *CodeSlice {
	seq := make([]int, len(records))
	for i := range seq {
		seq[i] = i
	}
	return &CodeSlice{Records: records, Mode: mode, seq: seq}
}

func (s *CodeSlice) Len() int { return len(s.Records) }

func (s *CodeSlice) Swap(i, j int) {
	s.Records[i], s.Records[j] = s.Records[j], s.Records[i]
	s.seq[i], s.seq[j] = s.seq[j], s.seq[i]
}

func (s *CodeSlice) Less(i, j int) bool {
	a, b := s.Records[i], s.Records[j]
	if a.ChromID != b.ChromID {
		return a.ChromID < b.ChromID
	}
	switch s.Mode {
	case KeyNameOnly:
		return s.seq[i] < s.seq[j]
	case KeySizeAsc:
		la, lb := a.Len(), b.Len()
		if la != lb {
			return la < lb
		}
	case KeySizeDesc:
		la, lb := a.Len(), b.Len()
		if la != lb {
			return la > lb
		}
	default: // KeyStartEnd
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
	}
	return s.seq[i] < s.seq[j]
}
