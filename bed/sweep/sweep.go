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

// Package sweep implements the k-way synchronized sweep (spec §4.5/§4.8):
// it co-iterates a sorted A stream and a sorted B stream, maintaining a
// bounded active window of B, and dispatches a uniform
// (a, window) -> events reducer call per A record plus per-chromosome and
// terminal flush calls (spec §9: "dispatch is by tagged variant, not
// runtime inheritance").
package sweep

import (
	"io"
	"math"

	"github.com/shenwei356/bedtk/bed"
)

// Lookahead declares an operator's window extension in each direction
// (spec §4.5's L_left / L_right).
type Lookahead struct {
	// Left is subtracted from a.Start before evicting: a b with
	// b.End <= a.Start - Left is evicted. Use math.MaxInt64 for
	// "never evict until chromosome ends" (closest's upstream lookback).
	Left int64
	// Right is added to a.End before admitting: a b with
	// b.Start < a.End + Right is admitted.
	Right int64
}

// NoLookahead is the intersect/coverage lookahead: strict overlap only.
var NoLookahead = Lookahead{Left: 0, Right: 0}

// Unbounded marks "keep until chromosome end" for Left/Right.
const Unbounded = math.MaxInt64 / 2

// Reducer is the uniform per-A-record callback (spec §4.6/§9). window is
// the live B window in sort order; prevB is the last evicted B record on
// this chromosome (closest's O(1) upstream answer, spec §4.5);
// nextB is the one-record B lookahead not yet admitted (spec's
// "next_B... one record lookahead").
type Reducer interface {
	// OnRecord is called once per A record with its current B window.
	OnRecord(a *bed.Record, window []*bed.Record, prevB, nextB *bed.Record)
	// OnChromEnd is called when A moves to a new chromosome or is
	// exhausted, after the last OnRecord call for the previous
	// chromosome (spec §4.8's FLUSH_CHROM state) - operators with
	// deferred output (coverage aggregates, complement tails,
	// genomecov totals) drain here.
	OnChromEnd(chromID int32)
}

// Engine runs the sweep state machine of spec §4.8.
type Engine struct {
	a, b      bed.Source
	lookahead Lookahead
	reducer   Reducer

	curChrom  int32
	haveChrom bool
	window    *arena
	nextB     *bed.Record // one-record B lookahead
	bDone     bool
	prevB     map[int32]*bed.Record // last evicted B per chromosome

	maxWindow int // running peak of window size, for property 9 tests
}

// NewEngine builds a sweep Engine over sorted streams a and b.
func NewEngine(a, b bed.Source, lookahead Lookahead, reducer Reducer) *Engine {
	return &Engine{
		a:         a,
		b:         b,
		lookahead: lookahead,
		reducer:   reducer,
		window:    newArena(64),
		prevB:     make(map[int32]*bed.Record),
	}
}

func (e *Engine) fillNextB() error {
	if e.bDone || e.nextB != nil {
		return nil
	}
	r, err := e.b.Next()
	if err == io.EOF {
		e.bDone = true
		return nil
	}
	if err != nil {
		return err
	}
	e.nextB = r
	return nil
}

// Run drives the full state machine to completion: INIT -> ON_CHROM ->
// (ADVANCE_B / EMIT / ADVANCE_A)* -> FLUSH_CHROM -> DONE.
func (e *Engine) Run() error {
	if err := e.fillNextB(); err != nil {
		return err
	}
	for {
		a, err := e.a.Next()
		if err == io.EOF {
			if e.haveChrom {
				e.reducer.OnChromEnd(e.curChrom)
			}
			return nil
		}
		if err != nil {
			return err
		}

		if !e.haveChrom || a.ChromID != e.curChrom {
			if e.haveChrom {
				e.reducer.OnChromEnd(e.curChrom)
			}
			if err := e.advanceBPastChrom(a.ChromID); err != nil {
				return err
			}
			e.window.reset()
			delete(e.prevB, a.ChromID) // fresh chromosome starts with no "previous"
			e.curChrom = a.ChromID
			e.haveChrom = true
		}

		e.evict(a)
		if err := e.admit(a); err != nil {
			return err
		}

		if n := e.window.len(); n > e.maxWindow {
			e.maxWindow = n
		}

		e.reducer.OnRecord(a, e.window.records(), e.prevB[a.ChromID], e.peekNextBSameChrom(a.ChromID))
	}
}

// MaxWindowSize returns the peak |window_B| observed, for verifying the
// O(k) memory bound (spec §8, property 9) in tests.
func (e *Engine) MaxWindowSize() int { return e.maxWindow }

// advanceBPastChrom skips B records with chrom < target, without
// admitting them into the window (spec §4.5 step 1).
func (e *Engine) advanceBPastChrom(target int32) error {
	for {
		if err := e.fillNextB(); err != nil {
			return err
		}
		if e.nextB == nil || e.nextB.ChromID >= target {
			return nil
		}
		e.nextB = nil
		if err := e.fillNextB(); err != nil {
			return err
		}
	}
}

// evict drops records from the window head while the head has
// b.End <= a.Start - Left. The window is ordered by start, so a record
// behind a head that ends later stays until that head is evicted; the
// window can therefore hold records that no longer overlap a.
func (e *Engine) evict(a *bed.Record) {
	threshold := a.Start - e.lookahead.Left
	for {
		head := e.window.peekHead()
		if head == nil || head.End > threshold {
			return
		}
		evicted := e.window.evictHead()
		e.prevB[a.ChromID] = evicted
	}
}

// admit pulls from B into the window every record with
// b.chrom == a.chrom and b.start < a.end + Right. A pulled record that
// already fails the eviction threshold (wholly behind a.Start - Left, e.g.
// a's very first record on a chromosome landing past B's start) is
// recorded as prevB instead of entering the window.
func (e *Engine) admit(a *bed.Record) error {
	limit := a.End + e.lookahead.Right
	threshold := a.Start - e.lookahead.Left
	for {
		if err := e.fillNextB(); err != nil {
			return err
		}
		if e.nextB == nil || e.nextB.ChromID != a.ChromID || e.nextB.Start >= limit {
			return nil
		}
		if e.nextB.End <= threshold {
			e.prevB[a.ChromID] = e.nextB
			e.nextB = nil
			continue
		}
		e.window.admit(e.nextB)
		e.nextB = nil
	}
}

// peekNextBSameChrom returns the B lookahead record iff it is still on
// chrom (i.e. hasn't been consumed into the window and isn't on a later
// chromosome), for closest's "next B strictly after a" candidate.
func (e *Engine) peekNextBSameChrom(chrom int32) *bed.Record {
	if e.nextB == nil || e.nextB.ChromID != chrom {
		return nil
	}
	return e.nextB
}
