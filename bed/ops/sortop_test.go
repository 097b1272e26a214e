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
	"github.com/shenwei356/bedtk/bed/extsort"
)

func TestSortOrdersByChromThenStart(t *testing.T) {
	in := bed.NewInterner(bed.AppearanceOrder)
	// chr2 interned first (ChromID 0), chr1 second (ChromID 1): sort
	// is by ascending ChromID, so chr2's record leads despite its name.
	records := parseAll(t, in, "chr2\t10\t20", "chr1\t30\t40", "chr1\t0\t10")

	out, buf := newOut()
	op := NewSort(extsort.Options{Interner: in, MemoryBudget: 100}, out)
	if err := op.Run(&fixedSource{records: records}); err != nil {
		t.Fatal(err)
	}
	out.Raw().Flush()

	want := "chr2\t10\t20\nchr1\t0\t10\nchr1\t30\t40\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestSortPassesThroughHeaderLinesImmediately(t *testing.T) {
	in := bed.NewInterner(bed.AppearanceOrder)
	data := parseAll(t, in, "chr1\t10\t20", "chr1\t0\t10")
	header := &bed.Record{Tail: []byte("track name=test")}
	records := append([]*bed.Record{header}, data...)

	out, buf := newOut()
	op := NewSort(extsort.Options{Interner: in, MemoryBudget: 100}, out)
	if err := op.Run(&fixedSource{records: records}); err != nil {
		t.Fatal(err)
	}
	out.Raw().Flush()

	want := "track name=test\nchr1\t0\t10\nchr1\t10\t20\n"
	if buf.String() != want {
		t.Errorf("header line should be written ahead of the sorted data: got %q, want %q", buf.String(), want)
	}
}
