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

package cli

import (
	"bufio"
	"os"

	"github.com/pkg/errors"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/bedio"
	"github.com/shenwei356/bedtk/bed/ops"
	"github.com/shenwei356/bedtk/internal/config"
)

// closer is whatever a successful open wants run on completion.
type closer func()

// openSource opens file as a validated bed.Source: a buffered (or
// memory-mapped, when eligible) line reader, run through the
// sort-order Validator unless AssumeSorted redirects it through the
// identity forwarder instead - the CLI-layer composition of bed's
// reader/validator pieces that every binary-input subcommand needs.
func openSource(file string, opt *config.Options, in *bed.Interner) (bed.Source, closer, error) {
	if mf, ok, err := bedio.OpenMapped(file); err != nil {
		return nil, nil, err
	} else if ok {
		lr := bed.NewMappedLineReader(mf, file)
		return wrapValidated(lr, opt, in), func() { mf.Close() }, nil
	}

	br, f, err := bedio.InStream(file)
	if err != nil {
		return nil, nil, err
	}
	lr := bed.NewLineReader(br, file)
	closeFn := func() {
		if f != nil && f != os.Stdin {
			f.Close()
		}
	}
	return wrapValidated(lr, opt, in), closeFn, nil
}

func wrapValidated(lr *bed.LineReader, opt *config.Options, in *bed.Interner) bed.Source {
	if opt.AssumeSorted {
		return bed.NewIdentityForwarder(lr, in)
	}
	return bed.NewValidator(lr, in, "")
}

// openRawSource opens file without sort-order validation, for sort's
// identity pass over otherwise-unordered input (spec §6).
func openRawSource(file string) (*bed.RawSource, closer, error) {
	br, f, err := bedio.InStream(file)
	if err != nil {
		return nil, nil, err
	}
	lr := bed.NewLineReader(br, file)
	closeFn := func() {
		if f != nil && f != os.Stdin {
			f.Close()
		}
	}
	return bed.NewRawSource(lr), closeFn, nil
}

// openOutput opens file for writing, gzip-compressed when its name
// ends in .gz, returning an ops.Writer and a flush/close callback the
// caller must defer.
func openOutput(file string) (*ops.Writer, closer, error) {
	gzipped := len(file) > 3 && file[len(file)-3:] == ".gz"
	bw, gw, f, err := bedio.OutStream(file, gzipped, 6)
	if err != nil {
		return nil, nil, err
	}
	return ops.NewWriter(bw), func() {
		bw.Flush()
		if gw != nil {
			gw.Close()
		}
		if f != os.Stdout {
			f.Close()
		}
	}, nil
}

// loadGenome reads a -g genome file, required by complement/genomecov
// and optional elsewhere (only used there to validate -g was given
// when those operators need it).
func loadGenome(file string) (*bed.Genome, error) {
	br, f, err := bedio.InStream(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading genome file %s", file)
	}
	defer f.Close()
	return bed.ReadGenome(bufio.NewReader(br))
}

// newInterner builds the shared Interner for a subcommand: genome-file
// order when -g is given (required for complement/genomecov so gap
// output walks chromosomes in the caller's declared order), appearance
// order otherwise (spec §4.2's default).
func newInterner(genome *bed.Genome) *bed.Interner {
	if genome != nil {
		return bed.NewInternerFromGenome(genome, false)
	}
	return bed.NewInterner(bed.AppearanceOrder)
}
