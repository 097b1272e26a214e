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
	"fmt"
	"sort"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// Jaccard implements spec §4.6's jaccard operator: it tallies, over the
// whole run, the total intersection length and the total union length
// of A against B and reports their ratio - same sweep shape as
// Coverage/Intersect, but accumulating a running total instead of
// emitting per-record rows, so its output is a single summary line
// written once Run completes rather than per-OnRecord.
type Jaccard struct {
	cfg Config
	out *Writer

	interLen  int64
	aLen      int64
	pairCount int64 // number of overlapping (a, b) pairs, not A record count
}

// NewJaccard constructs the jaccard reducer.
func NewJaccard(cfg Config, out *Writer) *Jaccard {
	return &Jaccard{cfg: cfg, out: out}
}

// OnRecord implements sweep.Reducer. It accumulates a's length and its
// intersection length against the current B window; B's own total
// length is supplied separately by the driver (spec §4.6: jaccard needs
// a plain count of B's total bases, which doesn't require a second
// pass through the sweep - the CLI layer sums it while building B's
// Source).
func (op *Jaccard) OnRecord(a *bed.Record, window []*bed.Record, _, _ *bed.Record) {
	op.aLen += a.Len()

	var covered int64
	cursor := a.Start
	type iv struct{ s, e int64 }
	var covers []iv
	for _, b := range window {
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
	op.pairCount += int64(len(covers))
	sort.Slice(covers, func(i, j int) bool { return covers[i].s < covers[j].s })
	for _, c := range covers {
		if c.s > cursor {
			cursor = c.s
		}
		if c.e > cursor {
			covered += c.e - cursor
			cursor = c.e
		}
	}
	op.interLen += covered
}

// OnChromEnd implements sweep.Reducer; jaccard's totals are global, not
// per-chromosome, so there is nothing to flush here.
func (op *Jaccard) OnChromEnd(int32) {}

// Report writes the final "intersection\tunion\tjaccard\tn_intersections"
// summary line once the sweep has finished. bLen is B's total base
// count, summed independently by the CLI driver while it builds B's
// Source.
func (op *Jaccard) Report(bLen int64) {
	union := op.aLen + bLen - op.interLen
	ratio := 0.0
	if union > 0 {
		ratio = float64(op.interLen) / float64(union)
	}
	w := op.out.Raw()
	fmt.Fprintf(w, "%d\t%d\t%.7f\t%d\n", op.interLen, union, ratio, op.pairCount)
}

var _ sweep.Reducer = (*Jaccard)(nil)
