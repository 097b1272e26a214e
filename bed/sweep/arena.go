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

package sweep

import "github.com/shenwei356/bedtk/bed"

// arena is the slice-backed, free-list-indexed store for window_B (spec
// §9's "avoid reference counting; use an arena backing window_B indexed
// by small integers, with a free-list reused as records are evicted").
// It is grounded on the teacher's codeEntryHeap shape in
// unikmer/cmd/util-sort.go, which indexes into a slice by small int
// rather than holding pointers across goroutines/heap entries directly.
type arena struct {
	slots []*bed.Record
	free  []int32
	// order holds live slot indices in ascending-start insertion order,
	// i.e. sort order, satisfying the "window_B ordered by start" part
	// of the active-set invariant (spec §3).
	order []int32
}

func newArena(capacityHint int) *arena {
	return &arena{
		slots: make([]*bed.Record, 0, capacityHint),
		order: make([]int32, 0, capacityHint),
	}
}

// admit inserts r at the tail of order (callers only ever admit
// in ascending-start order from a sorted stream, so this preserves the
// invariant without a separate sort step).
func (a *arena) admit(r *bed.Record) int32 {
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = r
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, r)
	}
	a.order = append(a.order, idx)
	return idx
}

// evictHead removes and returns the oldest (smallest-start) live record,
// or nil if empty.
func (a *arena) evictHead() *bed.Record {
	if len(a.order) == 0 {
		return nil
	}
	idx := a.order[0]
	a.order = a.order[1:]
	r := a.slots[idx]
	a.slots[idx] = nil
	a.free = append(a.free, idx)
	return r
}

// peekHead returns the oldest live record without evicting it.
func (a *arena) peekHead() *bed.Record {
	if len(a.order) == 0 {
		return nil
	}
	return a.slots[a.order[0]]
}

// reset clears the window (chromosome boundary), per step 1 of §4.5.
func (a *arena) reset() {
	for _, idx := range a.order {
		a.slots[idx] = nil
		a.free = append(a.free, idx)
	}
	a.order = a.order[:0]
}

// records returns the live window in sort order, as a freshly
// allocated slice on every call.
func (a *arena) records() []*bed.Record {
	out := make([]*bed.Record, len(a.order))
	for i, idx := range a.order {
		out[i] = a.slots[idx]
	}
	return out
}

// len reports the current window size, used to check the memory-bound
// property (spec §8, property 9).
func (a *arena) len() int { return len(a.order) }
