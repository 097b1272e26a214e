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
	"container/heap"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/bederr"
)

// endHeap is a min-heap of active interval end positions, used to know
// when the depth at the current cursor decreases without re-scanning
// the whole active set (spec §4.6's genomecov; the same
// container/heap k-way pattern the external sort's chunk merge uses,
// applied here to interval ends instead of sorted-chunk heads).
type endHeap []int64

func (h endHeap) Len() int            { return len(h) }
func (h endHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h endHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *endHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// GenomecovFlags are genomecov's flags (spec §4.6).
type GenomecovFlags struct {
	PerBase   bool    // -d: one row per position (1-based), depth 0 included
	BedGraph  bool    // -bg: one row per non-zero-depth run
	AllRuns   bool    // -bga: one row per constant-depth run, including depth 0
	Scale     float64 // --scale: multiply reported depth (bedgraph and per-base modes; not the histogram)
	Trackline bool    // --trackline: emit a UCSC track header line first
}

// genomecovMode names the four mutually exclusive output shapes; the
// zero-value flags select histogram, bedtools' own default.
type genomecovMode int

const (
	modeHistogram genomecovMode = iota
	modeBedGraph
	modeBedGraphAll
	modePerBase
)

func (f GenomecovFlags) mode() genomecovMode {
	switch {
	case f.PerBase:
		return modePerBase
	case f.AllRuns:
		return modeBedGraphAll
	case f.BedGraph:
		return modeBedGraph
	default:
		return modeHistogram
	}
}

// Genomecov implements spec §4.6's genomecov operator: it needs the
// full per-chromosome depth profile of a single input against the
// genome table, which (unlike coverage) has no second stream to pair
// against, so it runs directly over the A source rather than through
// sweep.Engine - grounded on the teacher's unikmer/cmd/stats.go
// aggregate-and-report shape, generalized from k-mer tallies to a
// depth-over-position profile.
type Genomecov struct {
	cfg   Config
	flags GenomecovFlags
	out   *Writer
}

// NewGenomecov constructs the genomecov reducer. cfg.Genome must be
// non-nil.
func NewGenomecov(cfg Config, flags GenomecovFlags, out *Writer) *Genomecov {
	return &Genomecov{cfg: cfg, flags: flags, out: out}
}

// Run drains src, chromosome by chromosome, in genome order.
func (op *Genomecov) Run(src bed.Source) error {
	if op.cfg.Genome == nil {
		return bederr.CompatibilityConflict("genomecov requires a genome file (-g)")
	}
	mode := op.flags.mode()
	if op.flags.Trackline && (mode == modeBedGraph || mode == modeBedGraphAll) {
		op.out.Raw().WriteString("track type=bedGraph\n")
	}

	pending, err := src.Next()
	if err != nil && err != io.EOF {
		return err
	}

	genomeHist := map[int]int64{}
	var genomeLen int64

	for _, chrom := range op.cfg.Genome.Names() {
		length, _ := op.cfg.Genome.Len(chrom)
		genomeLen += length
		chromHist := map[int]int64{}
		var ends endHeap
		cursor := int64(0)
		runDepth := -1
		runStart := int64(0)

		flushRun := func(upTo int64) {
			if runDepth < 0 || upTo <= runStart {
				return
			}
			op.handleRun(mode, chrom, runStart, upTo, runDepth, chromHist, genomeHist)
		}

		advanceTo := func(pos int64) {
			for pos > cursor {
				next := pos
				if len(ends) > 0 && ends[0] < next {
					next = ends[0]
				}
				depth := len(ends)
				if depth != runDepth {
					flushRun(cursor)
					runDepth = depth
					runStart = cursor
				}
				for len(ends) > 0 && ends[0] == next {
					heap.Pop(&ends)
				}
				cursor = next
			}
		}

		for pending != nil && string(pending.Chrom) == chrom {
			advanceTo(pending.Start)
			heap.Push(&ends, pending.End)
			pending, err = src.Next()
			if err != nil && err != io.EOF {
				return err
			}
			if err == io.EOF {
				pending = nil
			}
		}
		advanceTo(length)
		flushRun(cursor)

		if mode == modeHistogram {
			op.emitHistRows(chrom, chromHist, length)
		}
	}

	if mode == modeHistogram {
		op.emitHistRows("genome", genomeHist, genomeLen)
	}
	return nil
}

// handleRun dispatches one constant-depth run [start, end) to the
// output shape selected by mode: per-base lines, a bedgraph row (all
// runs, or non-zero runs only), or a tally into the running depth
// histograms.
func (op *Genomecov) handleRun(mode genomecovMode, chrom string, start, end int64, depth int, chromHist, genomeHist map[int]int64) {
	switch mode {
	case modePerBase:
		op.emitPerBase(chrom, start, end, depth)
	case modeBedGraphAll:
		op.emitBedGraph(chrom, start, end, depth)
	case modeBedGraph:
		if depth != 0 {
			op.emitBedGraph(chrom, start, end, depth)
		}
	case modeHistogram:
		n := end - start
		chromHist[depth] += n
		genomeHist[depth] += n
	}
}

func (op *Genomecov) scaledDepthField(depth int) string {
	if op.flags.Scale != 0 && op.flags.Scale != 1 {
		return fmt.Sprintf("%.7f", float64(depth)*op.flags.Scale)
	}
	return strconv.Itoa(depth)
}

func (op *Genomecov) emitPerBase(chrom string, start, end int64, depth int) {
	depthField := op.scaledDepthField(depth)
	for p := start; p < end; p++ {
		op.out.Raw().WriteString(chrom)
		op.out.Raw().WriteByte('\t')
		op.out.Raw().WriteString(strconv.FormatInt(p+1, 10))
		op.out.Raw().WriteByte('\t')
		op.out.Raw().WriteString(depthField)
		op.out.Raw().WriteByte('\n')
	}
}

// emitBedGraph writes the bare triple plus a 4th depth column; Interval
// can't be reused here since it terminates the line itself.
func (op *Genomecov) emitBedGraph(chrom string, start, end int64, depth int) {
	w := op.out.Raw()
	w.WriteString(chrom)
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(start, 10))
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(end, 10))
	w.WriteByte('\t')
	w.WriteString(op.scaledDepthField(depth))
	w.WriteByte('\n')
}

// emitHistRows writes one histogram row per depth present in hist,
// ascending: label, depth, bases at that depth, total bases, and the
// fraction of total those bases represent.
func (op *Genomecov) emitHistRows(label string, hist map[int]int64, total int64) {
	depths := make([]int, 0, len(hist))
	for d := range hist {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	w := op.out.Raw()
	for _, d := range depths {
		count := hist[d]
		frac := 0.0
		if total > 0 {
			frac = float64(count) / float64(total)
		}
		w.WriteString(label)
		w.WriteByte('\t')
		w.WriteString(strconv.Itoa(d))
		w.WriteByte('\t')
		w.WriteString(strconv.FormatInt(count, 10))
		w.WriteByte('\t')
		w.WriteString(strconv.FormatInt(total, 10))
		w.WriteByte('\t')
		fmt.Fprintf(w, "%.7f", frac)
		w.WriteByte('\n')
	}
}
