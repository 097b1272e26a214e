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
	"github.com/shenwei356/bedtk/bed/bederr"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// IntersectFlags are intersect's report/filter flags (spec §4.6).
type IntersectFlags struct {
	WriteA bool // -wa: emit a unchanged
	WriteB bool // -wb: append b's fields
	U      bool // -u: emit a once iff >=1 overlap
	V      bool // -v: emit a iff zero overlaps
	C      bool // -c: emit a with appended overlap count
	F      float64
	R      bool // -r: also require o/len(b) >= F
}

// Validate checks the mutually-exclusive-flag rules (spec §7's
// CompatibilityConflict).
func (f IntersectFlags) Validate() error {
	if f.V && (f.WriteB) {
		return bederr.CompatibilityConflict("-v cannot be combined with -wb (no B side to report)")
	}
	if f.U && f.V {
		return bederr.CompatibilityConflict("-u and -v are mutually exclusive")
	}
	if f.C && f.V {
		return bederr.CompatibilityConflict("-c and -v are mutually exclusive")
	}
	if f.R && f.F == 0 {
		return bederr.CompatibilityConflict("-r requires -f")
	}
	return nil
}

// Intersect implements spec §4.6's intersect operator as a sweep.Reducer.
// It is the direct generalization of the teacher's set-intersection
// commands (unikmer/cmd/inter.go) from exact-match set membership to
// interval overlap with fractional filters.
type Intersect struct {
	cfg   Config
	flags IntersectFlags
	out   *Writer
}

// NewIntersect constructs the intersect reducer.
func NewIntersect(cfg Config, flags IntersectFlags, out *Writer) *Intersect {
	return &Intersect{cfg: cfg, flags: flags, out: out}
}

func (op *Intersect) passesFilter(a, b *bed.Record) bool {
	o := bed.OverlapLen(a.Start, a.End, b.Start, b.End, op.cfg.BedtoolsCompatible)
	if o == 0 {
		return false
	}
	if op.flags.F > 0 {
		if float64(o)/float64(a.Len()) < op.flags.F {
			return false
		}
		if op.flags.R && float64(o)/float64(b.Len()) < op.flags.F {
			return false
		}
	}
	return true
}

// OnRecord implements sweep.Reducer.
func (op *Intersect) OnRecord(a *bed.Record, window []*bed.Record, _, _ *bed.Record) {
	count := 0
	for _, b := range window {
		if !op.passesFilter(a, b) {
			continue
		}
		count++
		if op.flags.U || op.flags.V || op.flags.C {
			continue // counting modes defer output until after the loop
		}
		op.emitPair(a, b)
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

func (op *Intersect) emitPair(a, b *bed.Record) {
	switch {
	case op.flags.WriteA && op.flags.WriteB:
		op.out.RecordWithRecord(a, b)
	case op.flags.WriteA:
		op.out.Record(a)
	case op.flags.WriteB:
		op.out.RecordWithRecord(a, b)
	default:
		lo, hi := a.Start, a.End
		if b.Start > lo {
			lo = b.Start
		}
		if b.End < hi {
			hi = b.End
		}
		op.out.Interval(string(a.Chrom), lo, hi)
	}
}

// OnChromEnd implements sweep.Reducer; intersect has no deferred state.
func (op *Intersect) OnChromEnd(int32) {}

var _ sweep.Reducer = (*Intersect)(nil)
