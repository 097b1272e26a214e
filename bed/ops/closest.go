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

// TieMode picks which candidate(s) closest reports when an upstream and
// a downstream candidate are equidistant.
type TieMode int

// Tie-break modes (spec §4.6).
const (
	TieAll TieMode = iota
	TieFirst
	TieLast
)

// ClosestFlags are closest's flags.
type ClosestFlags struct {
	Tie              TieMode
	IgnoreOverlap    bool  // -io: never report an overlapping B as the closest
	IgnoreUpstream   bool  // -iu: drop upstream (prevB) candidates
	IgnoreDownstream bool  // -id: drop downstream (nextB) candidates
	Signed           bool  // -d: report signed distance (upstream negative)
	MaxDistance      int64 // -D N: cap candidates to |distance| <= N
	MaxDistanceSet   bool
}

// Closest implements spec §4.6's closest operator. Overlapping B in the
// window win the tie outright (distance 0); otherwise it compares the
// upstream candidate (prevB, the last record evicted on this
// chromosome) against the downstream candidate (nextB, the one-record
// B lookahead), which is exactly the O(1) pair the sweep engine already
// tracks per spec §4.5 - grounded on the upstream/downstream lookup
// pattern in unikmer/cmd/locate.go.
type Closest struct {
	flags ClosestFlags
	out   *Writer
}

// NewClosest constructs the closest reducer. Drive it with
// sweep.NoLookahead: the B records the engine evicts become prevB, the
// upstream candidate.
func NewClosest(flags ClosestFlags, out *Writer) *Closest {
	return &Closest{flags: flags, out: out}
}

// OnRecord implements sweep.Reducer.
func (op *Closest) OnRecord(a *bed.Record, window []*bed.Record, prevB, nextB *bed.Record) {
	if !op.flags.IgnoreOverlap && len(window) > 0 {
		for _, b := range window {
			op.emit(a, b, 0)
		}
		return
	}

	if op.flags.IgnoreUpstream {
		prevB = nil
	}
	if op.flags.IgnoreDownstream {
		nextB = nil
	}

	var upDist, downDist int64 = -1, -1
	if prevB != nil {
		upDist = a.Start - prevB.End
		if upDist < 0 {
			upDist = 0
		}
		if !op.withinCap(upDist) {
			prevB = nil
		}
	}
	if nextB != nil {
		downDist = nextB.Start - a.End
		if downDist < 0 {
			downDist = 0
		}
		if !op.withinCap(downDist) {
			nextB = nil
		}
	}

	switch {
	case prevB == nil && nextB == nil:
		writeNullB(op.out, a)
	case prevB == nil:
		op.emit(a, nextB, downDist)
	case nextB == nil:
		op.emit(a, prevB, -upDist)
	case upDist < downDist:
		op.emit(a, prevB, -upDist)
	case downDist < upDist:
		op.emit(a, nextB, downDist)
	default: // tie
		switch op.flags.Tie {
		case TieFirst:
			op.emit(a, prevB, -upDist)
		case TieLast:
			op.emit(a, nextB, downDist)
		default:
			op.emit(a, prevB, -upDist)
			op.emit(a, nextB, downDist)
		}
	}
}

// withinCap reports whether a non-negative candidate distance satisfies
// -D N, or true when no cap was given.
func (op *Closest) withinCap(dist int64) bool {
	return !op.flags.MaxDistanceSet || dist <= op.flags.MaxDistance
}

// emit writes the (a, b) pair with the signed distance appended when
// -d is set (positive downstream, negative upstream, zero overlapping).
func (op *Closest) emit(a, b *bed.Record, signedDist int64) {
	if !op.flags.Signed {
		op.out.RecordWithRecord(a, b)
		return
	}
	// RecordWithRecord doesn't support a trailing field, so build the
	// line through RecordWithFields with b's triple folded into the
	// extra fields instead.
	op.out.RecordWithFields(a,
		string(b.Chrom),
		strconv.FormatInt(b.Start, 10),
		strconv.FormatInt(b.End, 10),
		strconv.FormatInt(signedDist, 10))
}

// OnChromEnd implements sweep.Reducer; closest has no deferred state.
func (op *Closest) OnChromEnd(int32) {}

var _ sweep.Reducer = (*Closest)(nil)
