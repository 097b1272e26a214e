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
	"sort"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// SubtractFlags are subtract's flags (spec §4.6).
type SubtractFlags struct {
	A bool // -A: emit a iff no overlap, else drop entirely
	F float64
}

// Subtract implements spec §4.6's subtract operator: it emits the pieces
// of a not covered by the union of matching B records, by sweeping the
// window's endpoints across a's extent - grounded on the same
// window-scan shape as Coverage below.
type Subtract struct {
	cfg   Config
	flags SubtractFlags
	out   *Writer
}

// NewSubtract constructs the subtract reducer.
func NewSubtract(cfg Config, flags SubtractFlags, out *Writer) *Subtract {
	return &Subtract{cfg: cfg, flags: flags, out: out}
}

func (op *Subtract) matches(a, b *bed.Record) bool {
	o := bed.OverlapLen(a.Start, a.End, b.Start, b.End, op.cfg.BedtoolsCompatible)
	if o == 0 {
		return false
	}
	if op.flags.F > 0 && float64(o)/float64(a.Len()) < op.flags.F {
		return false
	}
	return true
}

// OnRecord implements sweep.Reducer.
func (op *Subtract) OnRecord(a *bed.Record, window []*bed.Record, _, _ *bed.Record) {
	type iv struct{ s, e int64 }
	var covers []iv
	for _, b := range window {
		if !op.matches(a, b) {
			continue
		}
		lo, hi := a.Start, a.End
		if b.Start > lo {
			lo = b.Start
		}
		if b.End < hi {
			hi = b.End
		}
		if hi > lo {
			covers = append(covers, iv{lo, hi})
		}
	}

	if op.flags.A {
		if len(covers) == 0 {
			op.out.Record(a)
		}
		return
	}

	if len(covers) == 0 {
		op.out.Record(a)
		return
	}

	sort.Slice(covers, func(i, j int) bool { return covers[i].s < covers[j].s })

	cursor := a.Start
	for _, c := range covers {
		if c.s > cursor {
			op.out.Interval(string(a.Chrom), cursor, c.s)
		}
		if c.e > cursor {
			cursor = c.e
		}
	}
	if cursor < a.End {
		op.out.Interval(string(a.Chrom), cursor, a.End)
	}
}

// OnChromEnd implements sweep.Reducer; subtract has no deferred state.
func (op *Subtract) OnChromEnd(int32) {}

var _ sweep.Reducer = (*Subtract)(nil)
