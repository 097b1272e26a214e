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

func TestSubtractSplitsAroundOverlap(t *testing.T) {
	out, buf := newOut()
	reducer := NewSubtract(Config{}, SubtractFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t20"},
		[]string{"chr1\t5\t10"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t0\t5\nchr1\t10\t20\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubtractNoOverlapPassesThrough(t *testing.T) {
	out, buf := newOut()
	reducer := NewSubtract(Config{}, SubtractFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t10"},
		[]string{"chr1\t20\t30"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t0\t10\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubtractFullyCoveredYieldsNothing(t *testing.T) {
	out, buf := newOut()
	reducer := NewSubtract(Config{}, SubtractFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t10"},
		[]string{"chr1\t0\t10"},
		sweep.NoLookahead, reducer, out, buf)
	if got != "" {
		t.Errorf("fully covered A should vanish: got %q", got)
	}
}

func TestSubtractAModeDropsOverlapping(t *testing.T) {
	out, buf := newOut()
	reducer := NewSubtract(Config{}, SubtractFlags{A: true}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t20", "chr1\t100\t110"},
		[]string{"chr1\t5\t10"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t100\t110\n"
	if got != want {
		t.Errorf("-A should drop any A with an overlap entirely: got %q, want %q", got, want)
	}
}

func TestSubtractMultipleOverlapsLeaveGaps(t *testing.T) {
	out, buf := newOut()
	reducer := NewSubtract(Config{}, SubtractFlags{}, out)
	got := runSweep(t,
		[]string{"chr1\t0\t30"},
		[]string{"chr1\t5\t10", "chr1\t20\t25"},
		sweep.NoLookahead, reducer, out, buf)
	want := "chr1\t0\t5\nchr1\t10\t20\nchr1\t25\t30\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
