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

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/extsort"
)

// Sort is the first-class "sort" operator: a thin driver over
// bed/extsort that reads an unordered stream, feeds every record
// through a Sorter, and writes the fully merged output - promoted to
// its own operator (rather than staying an internal implementation
// detail of "assume unsorted" redirects) so it can be invoked directly
// from the CLI as `bedtk sort`.
type Sort struct {
	opt extsort.Options
	out *Writer
}

// NewSort constructs the sort operator.
func NewSort(opt extsort.Options, out *Writer) *Sort {
	return &Sort{opt: opt, out: out}
}

// Run reads every record from raw (an unvalidated source - sort is the
// one operator that doesn't require its input already sorted), sorts
// it, and streams the result to out. Pass-through lines (comments,
// track/browser headers) from a bed.RawSource are written immediately,
// ahead of the sorted data, instead of being fed through the sorter.
func (op *Sort) Run(raw bed.Source) error {
	s := extsort.NewSorter(op.opt)
	defer s.Cleanup()

	for {
		r, err := raw.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if bed.IsPassthrough(r) {
			op.out.Raw().Write(r.Tail)
			op.out.Raw().WriteByte('\n')
			continue
		}
		if err := s.Add(r); err != nil {
			return err
		}
	}

	merged, err := s.Finish()
	if err != nil {
		return err
	}
	for {
		r, err := merged.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		op.out.Record(r)
	}
}
