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

	"github.com/shenwei356/bedtk/bed/sweep"
)

func TestJaccardReport(t *testing.T) {
	out, buf := newOut()
	reducer := NewJaccard(Config{}, out)
	runSweep(t,
		[]string{"chr1\t0\t10", "chr1\t20\t30"},
		[]string{"chr1\t5\t15", "chr1\t25\t35"},
		sweep.NoLookahead, reducer, out, buf)
	// each A overlaps its paired B by 5bp: interLen=10, aLen=20, bLen=20,
	// union = 20+20-10 = 30, ratio = 10/30.
	reducer.Report(20)
	out.Raw().Flush()

	want := "10\t30\t0.3333333\t2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJaccardNoOverlap(t *testing.T) {
	out, buf := newOut()
	reducer := NewJaccard(Config{}, out)
	runSweep(t,
		[]string{"chr1\t0\t10"},
		[]string{"chr1\t20\t30"},
		sweep.NoLookahead, reducer, out, buf)
	reducer.Report(10)
	out.Raw().Flush()

	want := "0\t20\t0.0000000\t0\n"
	if buf.String() != want {
		t.Errorf("disjoint intervals should report zero intersecting pairs: got %q, want %q", buf.String(), want)
	}
}

func TestJaccardCountsPairsNotARecords(t *testing.T) {
	out, buf := newOut()
	reducer := NewJaccard(Config{}, out)
	runSweep(t,
		[]string{"chr1\t0\t20"},
		[]string{"chr1\t5\t10", "chr1\t12\t18"},
		sweep.NoLookahead, reducer, out, buf)
	reducer.Report(11)
	out.Raw().Flush()

	// a single A record overlapping 2 B's must report 2 intersecting
	// pairs, not 1 A record.
	want := "11\t20\t0.5500000\t2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
