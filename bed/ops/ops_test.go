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
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/sweep"
)

// fixedSource replays pre-interned records, for operator tests that don't
// need an actual file-backed reader.
type fixedSource struct {
	records []*bed.Record
	i       int
}

func (s *fixedSource) Next() (*bed.Record, error) {
	if s.i >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

// parseAll interns and returns one Record per line, sharing in so
// ChromID comparisons are consistent across the A/B streams of a test.
func parseAll(t *testing.T, in *bed.Interner, lines ...string) []*bed.Record {
	t.Helper()
	out := make([]*bed.Record, len(lines))
	for i, line := range lines {
		r, err := bed.Parse([]byte(line))
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		id, err := in.Intern(r.Chrom)
		if err != nil {
			t.Fatal(err)
		}
		r.ChromID = id
		out[i] = r
	}
	return out
}

func newOut() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	return &Writer{bw: bw}, &buf
}

// runSweep builds an Interner shared across aLines/bLines, drives reducer
// through a sweep.Engine, flushes buf and returns the output text.
func runSweep(t *testing.T, aLines, bLines []string, lookahead sweep.Lookahead, reducer sweep.Reducer, out *Writer, buf *bytes.Buffer) string {
	t.Helper()
	in := bed.NewInterner(bed.AppearanceOrder)
	a := &fixedSource{records: parseAll(t, in, aLines...)}
	b := &fixedSource{records: parseAll(t, in, bLines...)}
	e := sweep.NewEngine(a, b, lookahead, reducer)
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	out.Raw().Flush()
	return buf.String()
}
