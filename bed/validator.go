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

package bed

import (
	"sort"

	"github.com/shenwei356/bedtk/bed/bederr"
)

// Source is the pull-based iterator contract every sorted stream
// implements (spec §9's "coroutine-shaped streams" design note): repeated
// Next calls yield records until io.EOF.
type Source interface {
	// Next returns the next record, or (nil, io.EOF) at end of stream.
	Next() (*Record, error)
}

// Validator wraps a Source, asserting non-decreasing (chrom_id, start)
// while forwarding (spec §4.3). Chromosome order is defined by in.
type Validator struct {
	src       Source
	in        *Interner
	file      string
	lineNo    int64
	havePrev  bool
	prevID    int32
	prevStart int64
	prevStr   []byte
	prevLine  int64
}

// NewValidator wraps src with sort-order assertion.
func NewValidator(src Source, in *Interner, file string) *Validator {
	return &Validator{src: src, in: in, file: file}
}

// Next returns the next record after asserting it does not violate sort
// order relative to the previous one.
func (v *Validator) Next() (*Record, error) {
	r, err := v.src.Next()
	if err != nil {
		return nil, err
	}
	v.lineNo++

	id := r.ChromID
	if id < 0 {
		var ierr error
		id, ierr = v.in.Intern(r.Chrom)
		if ierr != nil {
			return nil, ierr
		}
		r.ChromID = id
	}

	if v.havePrev {
		if id < v.prevID || (id == v.prevID && r.Start < v.prevStart) {
			return nil, bederr.UnsortedInput(v.file, v.lineNo, string(v.prevStr), string(r.Chrom))
		}
	}
	v.havePrev = true
	v.prevID = id
	v.prevStart = r.Start
	v.prevStr = append(v.prevStr[:0], r.Chrom...)
	v.prevLine = v.lineNo
	return r, nil
}

// identityForwarder bypasses validation entirely ("assume sorted" mode,
// spec §4.3).
type identityForwarder struct {
	src Source
	in  *Interner
}

// NewIdentityForwarder returns a Source that interns chrom ids but
// performs no ordering check.
func NewIdentityForwarder(src Source, in *Interner) Source {
	return &identityForwarder{src: src, in: in}
}

func (f *identityForwarder) Next() (*Record, error) {
	r, err := f.src.Next()
	if err != nil {
		return nil, err
	}
	if r.ChromID < 0 {
		id, ierr := f.in.Intern(r.Chrom)
		if ierr != nil {
			return nil, ierr
		}
		r.ChromID = id
	}
	return r, nil
}

// SortForChrom performs the "allow unsorted" redirect for merge (spec
// §4.3): buffers every record of a single chromosome and returns them
// sorted by (start, end), stable on input order.
func SortForChrom(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Start != records[j].Start {
			return records[i].Start < records[j].Start
		}
		return records[i].End < records[j].End
	})
}
