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
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shenwei356/bedtk/bed"
)

// MultiInter implements spec §4.6's multiinter operator: unlike every
// other operator it fans across N sorted streams rather than two, so it
// doesn't run through sweep.Engine (which is fixed at A/B); instead it
// buffers one chromosome at a time per input and merges their endpoint
// events directly - the same container/heap-free endpoint-sort shape as
// Coverage, generalized from one B stream to N labeled streams.
type MultiInter struct {
	names   []string
	sources []bed.Source
	cluster bool // --cluster: emit only runs where every input is active
	out     *Writer

	pending []*bed.Record // current lookahead per source, nil when exhausted
}

// NewMultiInter constructs the multiinter reducer over the given named,
// already-sorted, already-interned sources (same Interner and hence
// comparable ChromIDs across all of them). With cluster, only runs where
// every input is active are emitted (spec §4.6's `--cluster`).
func NewMultiInter(names []string, sources []bed.Source, cluster bool, out *Writer) *MultiInter {
	return &MultiInter{names: names, sources: sources, cluster: cluster, out: out, pending: make([]*bed.Record, len(sources))}
}

type multiEvent struct {
	pos   int64
	delta int
	idx   int
}

// Run drains all sources to completion, chromosome by chromosome.
func (op *MultiInter) Run() error {
	if err := op.fillAll(); err != nil {
		return err
	}

	for {
		chrom, chromName, ok := op.minChrom()
		if !ok {
			return nil
		}

		var events []multiEvent
		for i := range op.sources {
			for op.pending[i] != nil && op.pending[i].ChromID == chrom {
				events = append(events,
					multiEvent{op.pending[i].Start, 1, i},
					multiEvent{op.pending[i].End, -1, i})
				if err := op.advance(i); err != nil {
					return err
				}
			}
		}

		sort.Slice(events, func(a, b int) bool { return events[a].pos < events[b].pos })
		op.walk(chromName, events)
	}
}

func (op *MultiInter) fillAll() error {
	for i := range op.sources {
		if err := op.advance(i); err != nil {
			return err
		}
	}
	return nil
}

func (op *MultiInter) advance(i int) error {
	r, err := op.sources[i].Next()
	if err == io.EOF {
		op.pending[i] = nil
		return nil
	}
	if err != nil {
		return err
	}
	op.pending[i] = r
	return nil
}

// minChrom returns the lowest ChromID still pending across any source.
func (op *MultiInter) minChrom() (int32, string, bool) {
	best := int32(-1)
	var name string
	found := false
	for _, r := range op.pending {
		if r == nil {
			continue
		}
		if !found || r.ChromID < best {
			best = r.ChromID
			name = string(r.Chrom)
			found = true
		}
	}
	return best, name, found
}

// walk reconstructs contiguous runs of a constant active-source set from
// the sorted event list and writes one row per run.
func (op *MultiInter) walk(chrom string, events []multiEvent) {
	active := make([]int, len(op.sources))
	runStart := int64(0)
	haveRun := false

	i := 0
	for i < len(events) {
		pos := events[i].pos
		if haveRun && pos > runStart {
			op.flushRun(chrom, runStart, pos, active)
		}
		for i < len(events) && events[i].pos == pos {
			active[events[i].idx] += events[i].delta
			i++
		}
		runStart = pos
		haveRun = true
	}
}

// flushRun writes one multiinter row for [start, end) given the active
// counts snapshot (index i is "active" iff active[i] > 0): chrom, start,
// end, count, csv of active names, then one 0/1 presence column per
// input in order (spec §4.6's `presence_flags`).
func (op *MultiInter) flushRun(chrom string, start, end int64, active []int) {
	count := 0
	var names []string
	for i, n := range active {
		if n > 0 {
			count++
			names = append(names, op.names[i])
		}
	}
	if count == 0 {
		return
	}
	if op.cluster && count != len(op.sources) {
		return
	}
	w := op.out.Raw()
	w.WriteString(chrom)
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(start, 10))
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(end, 10))
	w.WriteByte('\t')
	w.WriteString(strconv.Itoa(count))
	w.WriteByte('\t')
	w.WriteString(strings.Join(names, ","))
	for _, n := range active {
		w.WriteByte('\t')
		if n > 0 {
			w.WriteByte('1')
		} else {
			w.WriteByte('0')
		}
	}
	w.WriteByte('\n')
}
