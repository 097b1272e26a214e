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

import (
	"strconv"
	"testing"
)

func chromRecord(t *testing.T, chromID int32, start, end int64) *Record {
	t.Helper()
	r := mustParse(t, "chrX\t"+strconv.FormatInt(start, 10)+"\t"+strconv.FormatInt(end, 10))
	r.ChromID = chromID
	return r
}

func TestPackKeyOrdersByStartThenEnd(t *testing.T) {
	if PackKey(1, 5) >= PackKey(2, 0) {
		t.Error("a lower start must pack to a lower key regardless of end")
	}
	if PackKey(5, 1) >= PackKey(5, 2) {
		t.Error("equal starts must order by end")
	}
}

func TestRadixSortStartEndOrdersWithinChrom(t *testing.T) {
	records := []*Record{
		chromRecord(t, 0, 20, 30),
		chromRecord(t, 0, 0, 10),
		chromRecord(t, 0, 0, 5),
		chromRecord(t, 0, 10, 15),
	}
	sorted, ok := RadixSortStartEnd(records, 1)
	if !ok {
		t.Fatal("RadixSortStartEnd rejected in-range coordinates")
	}
	wantStarts := []int64{0, 0, 10, 20}
	wantEnds := []int64{5, 10, 15, 30}
	for i, r := range sorted {
		if r.Start != wantStarts[i] || r.End != wantEnds[i] {
			t.Errorf("sorted[%d] = %d-%d, want %d-%d", i, r.Start, r.End, wantStarts[i], wantEnds[i])
		}
	}
}

func TestRadixSortStartEndKeepsChromosomesSeparate(t *testing.T) {
	records := []*Record{
		chromRecord(t, 1, 0, 5),
		chromRecord(t, 0, 100, 200),
		chromRecord(t, 1, 0, 1),
		chromRecord(t, 0, 0, 1),
	}
	sorted, ok := RadixSortStartEnd(records, 2)
	if !ok {
		t.Fatal("RadixSortStartEnd rejected in-range coordinates")
	}
	for i, r := range sorted[:2] {
		if r.ChromID != 0 {
			t.Errorf("sorted[%d].ChromID = %d, want 0 (chrom-0 run must come first)", i, r.ChromID)
		}
	}
	for i, r := range sorted[2:] {
		if r.ChromID != 1 {
			t.Errorf("sorted[%d].ChromID = %d, want 1", 2+i, r.ChromID)
		}
	}
	if sorted[0].Start != 0 || sorted[1].Start != 100 {
		t.Error("chrom-0 run should itself be sorted by start")
	}
	if sorted[2].Start != 0 || sorted[3].Start != 0 || sorted[2].End != 1 || sorted[3].End != 5 {
		t.Error("chrom-1 run should itself be sorted by (start, end)")
	}
}

func TestRadixSortStartEndIsStable(t *testing.T) {
	a := chromRecord(t, 0, 5, 10)
	b := chromRecord(t, 0, 5, 10)
	sorted, ok := RadixSortStartEnd([]*Record{a, b}, 1)
	if !ok {
		t.Fatal("RadixSortStartEnd rejected in-range coordinates")
	}
	if sorted[0] != a || sorted[1] != b {
		t.Error("equal (start, end) keys must retain input order")
	}
}

func TestRadixSortStartEndRejectsOutOfRangeCoordinates(t *testing.T) {
	huge := chromRecord(t, 0, 0, 0)
	huge.End = 1 << 40
	other := chromRecord(t, 0, 1, 2)
	if _, ok := RadixSortStartEnd([]*Record{huge, other}, 1); ok {
		t.Error("a coordinate beyond uint32 range must be rejected so the caller falls back")
	}
}
