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
	"github.com/shenwei356/bedtk/bed/bederr"
)

// Complement implements spec §4.6's complement operator over a single
// sorted stream and the genome table: it walks the genome's chromosomes
// in file order, and for each one consumes the matching run of input
// records (sorted input puts them in genome order when the -g mode is
// used for sorting) and emits the gaps between them plus the head/tail
// gap against the chromosome's bounds - grounded on the gap-walk in the
// teacher's unikmer/cmd/common.go range-reconstruction helper.
type Complement struct {
	cfg Config
	out *Writer
}

// NewComplement constructs the complement reducer. cfg.Genome must be
// non-nil.
func NewComplement(cfg Config, out *Writer) *Complement {
	return &Complement{cfg: cfg, out: out}
}

// Run drains src against cfg.Genome, chromosome by chromosome.
func (op *Complement) Run(src bed.Source) error {
	if op.cfg.Genome == nil {
		return bederr.CompatibilityConflict("complement requires a genome file (-g)")
	}

	pending, err := src.Next()
	if err != nil && err != io.EOF {
		return err
	}

	for _, chrom := range op.cfg.Genome.Names() {
		length, _ := op.cfg.Genome.Len(chrom)
		cursor := int64(0)

		for pending != nil && string(pending.Chrom) == chrom {
			if pending.Start > cursor {
				op.out.Interval(chrom, cursor, pending.Start)
			}
			if pending.End > cursor {
				cursor = pending.End
			}
			pending, err = src.Next()
			if err != nil && err != io.EOF {
				return err
			}
			if err == io.EOF {
				pending = nil
			}
		}

		if cursor < length {
			op.out.Interval(chrom, cursor, length)
		}
	}
	return nil
}
