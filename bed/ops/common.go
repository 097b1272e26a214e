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

// Package ops implements the operator set of spec §4.6: one Go type per
// operation, each a reducer over sweep events or over a single sorted
// stream, dispatched by the CLI layer as a tagged variant rather than
// through any interface hierarchy deeper than sweep.Reducer (spec §9).
package ops

import (
	"bufio"
	"strconv"

	"github.com/shenwei356/bedtk/bed"
)

// Config carries the immutable, CLI-injected settings every operator
// reads (spec §9: "the CLI collaborator injects configuration through an
// immutable value passed by reference into each operator's constructor").
type Config struct {
	BedtoolsCompatible bool
	Genome             *bed.Genome // required by complement/genomecov
}

// Writer wraps a *bufio.Writer with the small helpers every operator
// needs: writing a record verbatim, or a record with extra tab-separated
// fields appended (counts, fractions, B's fields, ...).
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps w.
func NewWriter(w *bufio.Writer) *Writer { return &Writer{bw: w} }

// Raw exposes the underlying *bufio.Writer for operators (genomecov's
// bedGraph/trackline output) that need line shapes the helpers below
// don't cover.
func (out *Writer) Raw() *bufio.Writer { return out.bw }

// Record writes r unchanged (chrom/start/end + preserved tail + newline).
func (out *Writer) Record(r *bed.Record) {
	r.FormatInto(out.bw)
}

// Interval writes a bare (chrom, start, end) triple with no tail, used
// for derived intervals (intersect overlaps, subtract pieces, complement
// gaps) that have no natural "tail" to preserve.
func (out *Writer) Interval(chrom string, start, end int64) {
	out.bw.WriteString(chrom)
	out.bw.WriteByte('\t')
	out.bw.WriteString(strconv.FormatInt(start, 10))
	out.bw.WriteByte('\t')
	out.bw.WriteString(strconv.FormatInt(end, 10))
	out.bw.WriteByte('\n')
}

// RecordWithFields writes r's three required fields and preserved tail,
// then appends each of extra as its own tab-separated field.
func (out *Writer) RecordWithFields(r *bed.Record, extra ...string) {
	chromEndOfLine(out.bw, r)
	for _, f := range extra {
		out.bw.WriteByte('\t')
		out.bw.WriteString(f)
	}
	out.bw.WriteByte('\n')
}

// RecordWithRecord writes a, then b's required triple and tail appended
// as additional fields (intersect --wb / window --wb style B-append).
func (out *Writer) RecordWithRecord(a, b *bed.Record) {
	chromEndOfLine(out.bw, a)
	if b == nil {
		out.bw.WriteString("\t.\t-1\t-1")
	} else {
		out.bw.WriteByte('\t')
		out.bw.Write(b.Chrom)
		out.bw.WriteByte('\t')
		out.bw.WriteString(strconv.FormatInt(b.Start, 10))
		out.bw.WriteByte('\t')
		out.bw.WriteString(strconv.FormatInt(b.End, 10))
		if len(b.Tail) > 0 {
			out.bw.WriteByte('\t')
			out.bw.Write(b.Tail)
		}
	}
	out.bw.WriteByte('\n')
}

// chromEndOfLine writes r's required fields + tail without the trailing
// newline, so callers can append more fields first.
func chromEndOfLine(w *bufio.Writer, r *bed.Record) {
	w.Write(r.Chrom)
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(r.Start, 10))
	w.WriteByte('\t')
	w.WriteString(strconv.FormatInt(r.End, 10))
	if len(r.Tail) > 0 {
		w.WriteByte('\t')
		w.Write(r.Tail)
	}
}

// writeNullB writes a with the "no candidate" B sentinel ("." for each
// field), used by closest when no candidate exists (spec §4.6).
func writeNullB(out *Writer, a *bed.Record) {
	out.RecordWithRecord(a, nil)
}
