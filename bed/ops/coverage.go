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
	"strconv"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// CoverageMode selects coverage's output shape (spec §4.6).
type CoverageMode int

// Coverage output modes.
const (
	CoverageDefault CoverageMode = iota // append count, covered bases, len, fraction
	CoverageMean                        // append mean depth
	CoverageHist                        // one row per depth value seen in a
	CoveragePerBase                     // -d: one row per position
)

// Coverage implements spec §4.6's coverage operator: for each A it sweeps
// the window's endpoints within a's extent to get union coverage and
// depth, grounded on the same aggregate-then-emit shape as the teacher's
// unikmer/cmd/stats.go per-key summary pass.
type Coverage struct {
	cfg  Config
	mode CoverageMode
	out  *Writer
}

// NewCoverage constructs the coverage reducer.
func NewCoverage(cfg Config, mode CoverageMode, out *Writer) *Coverage {
	return &Coverage{cfg: cfg, mode: mode, out: out}
}

type depthEvent struct {
	pos   int64
	delta int
}

// OnRecord implements sweep.Reducer.
func (op *Coverage) OnRecord(a *bed.Record, window []*bed.Record, _, _ *bed.Record) {
	var events []depthEvent
	var overlapping int
	for _, b := range window {
		lo, hi := a.Start, a.End
		if b.Start > lo {
			lo = b.Start
		}
		if b.End < hi {
			hi = b.End
		}
		if hi <= lo {
			continue
		}
		overlapping++
		events = append(events, depthEvent{lo, 1}, depthEvent{hi, -1})
	}

	length := a.Len()
	if len(events) == 0 {
		op.emitEmpty(a, length)
		return
	}
	// Events at the same position are summed together by positionalDepth
	// before the depth for that position is used, so only the position
	// needs to be ordered here.
	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	switch op.mode {
	case CoveragePerBase:
		op.emitPerBase(a, events, length)
	case CoverageHist:
		op.emitHist(a, events, length, overlapping)
	case CoverageMean:
		op.emitMean(a, events, length, overlapping)
	default:
		op.emitDefault(a, events, length, overlapping)
	}
}

// positionalDepth walks the sorted endpoint events and calls fn(lo, hi,
// depth) for every half-open sub-interval [lo, hi) of [a.Start, a.End)
// between consecutive event positions, with the depth over it.
func (op *Coverage) positionalDepth(a *bed.Record, events []depthEvent, fn func(lo, hi int64, depth int)) {
	depth := 0
	cursor := a.Start
	i := 0
	for i < len(events) {
		pos := events[i].pos
		if pos > cursor {
			fn(cursor, pos, depth)
			cursor = pos
		}
		for i < len(events) && events[i].pos == pos {
			depth += events[i].delta
			i++
		}
	}
	if cursor < a.End {
		fn(cursor, a.End, depth)
	}
}

func (op *Coverage) emitEmpty(a *bed.Record, length int64) {
	switch op.mode {
	case CoveragePerBase:
		for p := a.Start; p < a.End; p++ {
			op.out.RecordWithFields(a, strconv.FormatInt(p-a.Start+1, 10), "0")
		}
	case CoverageHist:
		frac := "0.0000000"
		if length > 0 {
			frac = "1.0000000"
		}
		op.out.RecordWithFields(a, "0", strconv.FormatInt(length, 10), strconv.FormatInt(length, 10), frac)
	case CoverageMean:
		op.out.RecordWithFields(a, "0.0000000")
	default:
		op.out.RecordWithFields(a, "0", "0", strconv.FormatInt(length, 10), "0.0000000")
	}
}

func (op *Coverage) emitDefault(a *bed.Record, events []depthEvent, length int64, overlapping int) {
	var covered int64
	op.positionalDepth(a, events, func(lo, hi int64, depth int) {
		if depth > 0 {
			covered += hi - lo
		}
	})
	frac := 0.0
	if length > 0 {
		frac = float64(covered) / float64(length)
	}
	op.out.RecordWithFields(a,
		strconv.Itoa(overlapping),
		strconv.FormatInt(covered, 10),
		strconv.FormatInt(length, 10),
		fmt.Sprintf("%.7f", frac))
}

func (op *Coverage) emitMean(a *bed.Record, events []depthEvent, length int64, _ int) {
	var weighted int64
	op.positionalDepth(a, events, func(lo, hi int64, depth int) {
		weighted += (hi - lo) * int64(depth)
	})
	mean := 0.0
	if length > 0 {
		mean = float64(weighted) / float64(length)
	}
	op.out.RecordWithFields(a, fmt.Sprintf("%.7f", mean))
}

func (op *Coverage) emitHist(a *bed.Record, events []depthEvent, length int64, _ int) {
	byDepth := map[int]int64{}
	op.positionalDepth(a, events, func(lo, hi int64, depth int) {
		byDepth[depth] += hi - lo
	})
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		bases := byDepth[d]
		frac := 0.0
		if length > 0 {
			frac = float64(bases) / float64(length)
		}
		op.out.RecordWithFields(a,
			strconv.Itoa(d),
			strconv.FormatInt(bases, 10),
			strconv.FormatInt(length, 10),
			fmt.Sprintf("%.7f", frac))
	}
}

func (op *Coverage) emitPerBase(a *bed.Record, events []depthEvent, _ int64) {
	op.positionalDepth(a, events, func(lo, hi int64, depth int) {
		for p := lo; p < hi; p++ {
			op.out.RecordWithFields(a, strconv.FormatInt(p-a.Start+1, 10), strconv.Itoa(depth))
		}
	})
}

// OnChromEnd implements sweep.Reducer; coverage has no deferred state
// beyond what each OnRecord already emits.
func (op *Coverage) OnChromEnd(int32) {}

var _ sweep.Reducer = (*Coverage)(nil)
