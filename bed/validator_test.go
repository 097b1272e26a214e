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
	"io"
	"testing"
)

// sliceSource replays a fixed list of records, for tests that don't need
// an actual LineReader.
type sliceSource struct {
	records []*Record
	i       int
}

func (s *sliceSource) Next() (*Record, error) {
	if s.i >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

func mustParse(t *testing.T, line string) *Record {
	t.Helper()
	r, err := Parse([]byte(line))
	if err != nil {
		t.Fatalf("Parse(%q): %v", line, err)
	}
	return r
}

func TestValidatorAcceptsSorted(t *testing.T) {
	src := &sliceSource{records: []*Record{
		mustParse(t, "chr1\t0\t10"),
		mustParse(t, "chr1\t5\t20"),
		mustParse(t, "chr2\t0\t5"),
	}}
	v := NewValidator(src, NewInterner(AppearanceOrder), "test")
	for i := 0; i < 3; i++ {
		if _, err := v.Next(); err != nil {
			t.Fatalf("record %d: unexpected error %v", i, err)
		}
	}
	if _, err := v.Next(); err != io.EOF {
		t.Errorf("final Next() = %v, want io.EOF", err)
	}
}

func TestValidatorRejectsUnsortedStart(t *testing.T) {
	src := &sliceSource{records: []*Record{
		mustParse(t, "chr1\t10\t20"),
		mustParse(t, "chr1\t5\t15"),
	}}
	v := NewValidator(src, NewInterner(AppearanceOrder), "test")
	if _, err := v.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Next(); err == nil {
		t.Error("expected unsorted-input error, got nil")
	}
}

func TestValidatorRejectsUnsortedChrom(t *testing.T) {
	src := &sliceSource{records: []*Record{
		mustParse(t, "chr2\t0\t10"),
		mustParse(t, "chr1\t0\t10"),
	}}
	// genome order fixes chr1 before chr2; under appearance order chr2
	// would simply take id 0 and the pair would be in order.
	g := NewGenome()
	g.Add("chr1", 100)
	g.Add("chr2", 100)
	v := NewValidator(src, NewInternerFromGenome(g, false), "test")
	if _, err := v.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Next(); err == nil {
		t.Error("expected unsorted-input error for out-of-order chromosome, got nil")
	}
}

func TestIdentityForwarderSkipsValidation(t *testing.T) {
	src := &sliceSource{records: []*Record{
		mustParse(t, "chr2\t10\t20"),
		mustParse(t, "chr1\t0\t5"),
	}}
	f := NewIdentityForwarder(src, NewInterner(AppearanceOrder))
	for i := 0; i < 2; i++ {
		if _, err := f.Next(); err != nil {
			t.Fatalf("record %d: unexpected error %v", i, err)
		}
	}
}

func TestSortForChrom(t *testing.T) {
	records := []*Record{
		mustParse(t, "chr1\t20\t30"),
		mustParse(t, "chr1\t0\t10"),
		mustParse(t, "chr1\t0\t5"),
	}
	SortForChrom(records)
	if records[0].Start != 0 || records[0].End != 5 {
		t.Errorf("records[0] = %d-%d, want 0-5", records[0].Start, records[0].End)
	}
	if records[1].Start != 0 || records[1].End != 10 {
		t.Errorf("records[1] = %d-%d, want 0-10", records[1].Start, records[1].End)
	}
	if records[2].Start != 20 {
		t.Errorf("records[2].Start = %d, want 20", records[2].Start)
	}
}
