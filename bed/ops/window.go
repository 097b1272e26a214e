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
	"strconv"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// WindowFlags are window's flags (spec §4.6). Left/Right pad a's extent
// before testing overlap against B; -w sets both, -l/-r set them
// independently.
type WindowFlags struct {
	Left  int64
	Right int64
	U     bool // -u: emit a once iff >=1 candidate within the window
	V     bool // -v: emit a iff zero candidates within the window
	C     bool // -c: emit a with appended candidate count
}

// Window implements spec §4.6's window operator: identical shape to
// Intersect, but the overlap test is against a padded a extent rather
// than a's raw extent, so the sweep.Lookahead the CLI layer builds for
// it must also reflect Left/Right (spec §4.5's L_left/L_right are set
// straight from -l/-r). Grounded on the same locate.go lookahead
// pattern as Closest.
type Window struct {
	flags WindowFlags
	out   *Writer
}

// NewWindow constructs the window reducer.
func NewWindow(flags WindowFlags, out *Writer) *Window {
	return &Window{flags: flags, out: out}
}

// OnRecord implements sweep.Reducer.
func (op *Window) OnRecord(a *bed.Record, window []*bed.Record, _, _ *bed.Record) {
	lo, hi := a.Start-op.flags.Left, a.End+op.flags.Right
	if lo < 0 {
		lo = 0
	}

	count := 0
	for _, b := range window {
		if b.Start >= hi || b.End <= lo {
			continue
		}
		count++
		if op.flags.U || op.flags.V || op.flags.C {
			continue
		}
		op.out.RecordWithRecord(a, b)
	}

	switch {
	case op.flags.C:
		op.out.RecordWithFields(a, strconv.Itoa(count))
	case op.flags.U:
		if count > 0 {
			op.out.Record(a)
		}
	case op.flags.V:
		if count == 0 {
			op.out.Record(a)
		}
	}
}

// OnChromEnd implements sweep.Reducer; window has no deferred state.
func (op *Window) OnChromEnd(int32) {}

var _ sweep.Reducer = (*Window)(nil)
