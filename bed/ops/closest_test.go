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

func TestClosestOverlapWinsOutright(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t10\t20"},
		[]string{"chr1\t5\t12", "chr1\t18\t25"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t10\t20\tchr1\t5\t12\n" +
		"chr1\t10\t20\tchr1\t18\t25\n"
	if got != want {
		t.Errorf("both overlapping B should be reported: got %q, want %q", got, want)
	}
}

func TestClosestNoOverlapPicksNearer(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t10", "chr1\t50\t60"},
		[]string{"chr1\t20\t25"},
		sweep.NoLookahead, reducer, out, buf)
	// a1 [0,10): only downstream candidate, distance 10.
	// a2 [50,60): only upstream candidate, distance 25.
	want := "chr1\t0\t10\tchr1\t20\t25\n" +
		"chr1\t50\t60\tchr1\t20\t25\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClosestTieReportsBothByDefault(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10", "chr1\t100\t110"},
		sweep.NoLookahead, reducer, out, buf)
	// upDist = 50-10 = 40, downDist = 100-60 = 40: a tie.
	want := "chr1\t50\t60\tchr1\t0\t10\n" +
		"chr1\t50\t60\tchr1\t100\t110\n"
	if got != want {
		t.Errorf("TieAll should report both on a tie: got %q, want %q", got, want)
	}
}

func TestClosestTieFirstPicksUpstream(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{Tie: TieFirst}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10", "chr1\t100\t110"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t0\t10\n"
	if got != want {
		t.Errorf("-t first should report only the upstream candidate: got %q, want %q", got, want)
	}
}

func TestClosestTieLastPicksDownstream(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{Tie: TieLast}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10", "chr1\t100\t110"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t100\t110\n"
	if got != want {
		t.Errorf("-t last should report only the downstream candidate: got %q, want %q", got, want)
	}
}

func TestClosestNoCandidateEmitsNull(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr2\t0\t10"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\t.\t-1\t-1\n"
	if got != want {
		t.Errorf("no B on chr1 at all: got %q, want %q", got, want)
	}
}

func TestClosestIgnoreOverlapSkipsWindow(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{IgnoreOverlap: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t55\t58"},
		sweep.NoLookahead, reducer, out, buf)
	// the only B overlaps a, but -io forbids using it; no other
	// candidate exists, so the null sentinel is emitted.
	want := "chr1\t50\t60\t.\t-1\t-1\n"
	if got != want {
		t.Errorf("-io should ignore the overlapping candidate: got %q, want %q", got, want)
	}
}

func TestClosestSignedDistance(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{Signed: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t0\t10\t-40\n"
	if got != want {
		t.Errorf("-d should report a negative upstream distance: got %q, want %q", got, want)
	}
}

func TestClosestIgnoreUpstreamFallsBackToDownstream(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{IgnoreUpstream: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10", "chr1\t100\t110"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t100\t110\n"
	if got != want {
		t.Errorf("-iu should drop the upstream candidate even on a tie: got %q, want %q", got, want)
	}
}

func TestClosestIgnoreDownstreamFallsBackToUpstream(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{IgnoreDownstream: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10", "chr1\t100\t110"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t0\t10\n"
	if got != want {
		t.Errorf("-id should drop the downstream candidate even on a tie: got %q, want %q", got, want)
	}
}

func TestClosestMaxDistanceCapsCandidates(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{MaxDistance: 10, MaxDistanceSet: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t0\t10"},
		sweep.NoLookahead, reducer, out, buf)
	// upDist is 40, beyond the -D 10 cap: no candidate qualifies.
	want := "chr1\t50\t60\t.\t-1\t-1\n"
	if got != want {
		t.Errorf("-D 10 should reject a distance-40 candidate: got %q, want %q", got, want)
	}
}

func TestClosestMaxDistanceAllowsCloserCandidate(t *testing.T) {
	out, buf := newOut()
	reducer := NewClosest(ClosestFlags{MaxDistance: 10, MaxDistanceSet: true}, out)
	got := runSweep(t,
		[]string{"chr1\t50\t60"},
		[]string{"chr1\t45\t48"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t50\t60\tchr1\t45\t48\n"
	if got != want {
		t.Errorf("-D 10 should allow a distance-2 candidate: got %q, want %q", got, want)
	}
}
