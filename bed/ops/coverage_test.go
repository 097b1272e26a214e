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

// two overlaps over a=[0,10): [2,5) and [4,8), giving depth 1 over
// [2,4) and [5,8) (5 bases) and depth 2 over [4,5) (1 base), depth 0
// over [0,2) and [8,10) (4 bases).
func coverageFixture(t *testing.T, mode CoverageMode) string {
	t.Helper()
	out, buf := newOut()
	reducer := NewCoverage(Config{}, mode, out)
	return runSweep(t,
		[]string{"chr1\t0\t10"},
		[]string{"chr1\t2\t5", "chr1\t4\t8"},
		sweep.NoLookahead, reducer, out, buf)
}

func TestCoverageDefault(t *testing.T) {
	got := coverageFixture(t, CoverageDefault)
	want := "chr1\t0\t10\t2\t6\t10\t0.6000000\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCoverageMean(t *testing.T) {
	got := coverageFixture(t, CoverageMean)
	want := "chr1\t0\t10\t0.7000000\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCoverageHist(t *testing.T) {
	got := coverageFixture(t, CoverageHist)
	want := "chr1\t0\t10\t0\t4\t10\t0.4000000\n" +
		"chr1\t0\t10\t1\t5\t10\t0.5000000\n" +
		"chr1\t0\t10\t2\t1\t10\t0.1000000\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCoveragePerBase(t *testing.T) {
	got := coverageFixture(t, CoveragePerBase)
	want := "chr1\t0\t10\t1\t0\n" +
		"chr1\t0\t10\t2\t0\n" +
		"chr1\t0\t10\t3\t1\n" +
		"chr1\t0\t10\t4\t1\n" +
		"chr1\t0\t10\t5\t2\n" +
		"chr1\t0\t10\t6\t1\n" +
		"chr1\t0\t10\t7\t1\n" +
		"chr1\t0\t10\t8\t1\n" +
		"chr1\t0\t10\t9\t0\n" +
		"chr1\t0\t10\t10\t0\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCoverageEmptyWindowIsZero(t *testing.T) {
	out, buf := newOut()
	reducer := NewCoverage(Config{}, CoverageDefault, out)
	got := runSweep(t,
		[]string{"chr1\t0\t5"},
		[]string{"chr1\t100\t200"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t0\t5\t0\t0\t5\t0.0000000\n"
	if got != want {
		t.Errorf("no overlap should report all zeros: got %q, want %q", got, want)
	}
}
