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
	"testing"

	"github.com/shenwei356/bedtk/bed"
)

func runMerge(t *testing.T, flags MergeFlags, lines ...string) string {
	t.Helper()
	out, buf := newOut()
	records := make([]*bed.Record, len(lines))
	for i, line := range lines {
		r, err := bed.Parse([]byte(line))
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		records[i] = r
	}
	op := NewMerge(flags, out)
	if err := op.Run(&fixedSource{records: records}); err != nil {
		t.Fatal(err)
	}
	out.Raw().Flush()
	return buf.String()
}

func TestMergeAdjacentIntervals(t *testing.T) {
	got := runMerge(t, MergeFlags{}, "chr1\t0\t10", "chr1\t10\t20", "chr1\t30\t40")
	want := "chr1\t0\t20\nchr1\t30\t40\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMergeOverlappingIntervals(t *testing.T) {
	got := runMerge(t, MergeFlags{}, "chr1\t0\t10", "chr1\t5\t20")
	want := "chr1\t0\t20\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMergeDistance(t *testing.T) {
	got := runMerge(t, MergeFlags{Distance: 5}, "chr1\t0\t10", "chr1\t13\t20")
	want := "chr1\t0\t20\n"
	if got != want {
		t.Errorf("-d 5 should bridge a 3bp gap: got %q, want %q", got, want)
	}
}

func TestMergeGapBeyondDistance(t *testing.T) {
	got := runMerge(t, MergeFlags{Distance: 2}, "chr1\t0\t10", "chr1\t13\t20")
	want := "chr1\t0\t10\nchr1\t13\t20\n"
	if got != want {
		t.Errorf("a 3bp gap exceeds -d 2: got %q, want %q", got, want)
	}
}

func TestMergeCount(t *testing.T) {
	got := runMerge(t, MergeFlags{Count: true}, "chr1\t0\t10", "chr1\t5\t20", "chr1\t30\t40")
	want := "chr1\t0\t20\t2\nchr1\t30\t40\t1\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMergeByStrandSeparatesBuckets(t *testing.T) {
	got := runMerge(t, MergeFlags{ByStrand: true},
		"chr1\t0\t10\tname\t0\t+",
		"chr1\t5\t20\tname\t0\t-",
	)
	want := "chr1\t0\t10\nchr1\t5\t20\n"
	if got != want {
		t.Errorf("-s should keep +/- strand buckets separate: got %q, want %q", got, want)
	}
}

func TestMergeDifferentChromNotMerged(t *testing.T) {
	got := runMerge(t, MergeFlags{}, "chr1\t0\t10", "chr2\t0\t10")
	want := "chr1\t0\t10\nchr2\t0\t10\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func drainMerged(t *testing.T, lines ...string) []*bed.Record {
	t.Helper()
	records := make([]*bed.Record, len(lines))
	for i, line := range lines {
		r, err := bed.Parse([]byte(line))
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		records[i] = r
	}
	ms := NewMergedSource(&fixedSource{records: records})
	var out []*bed.Record
	for {
		r, err := ms.Next()
		if err != nil {
			break
		}
		out = append(out, r)
	}
	return out
}

func TestMergedSourceCoalescesOverlaps(t *testing.T) {
	got := drainMerged(t, "chr1\t0\t10", "chr1\t5\t20", "chr1\t30\t40")
	want := []struct{ start, end int64 }{{0, 20}, {30, 40}}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Start != w.start || got[i].End != w.end {
			t.Errorf("record %d: got [%d,%d), want [%d,%d)", i, got[i].Start, got[i].End, w.start, w.end)
		}
	}
}

func TestMergedSourcePassesThroughDisjoint(t *testing.T) {
	got := drainMerged(t, "chr1\t0\t10", "chr1\t20\t30")
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}
