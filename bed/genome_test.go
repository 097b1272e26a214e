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
	"strings"
	"testing"
)

func TestReadGenome(t *testing.T) {
	r := strings.NewReader("chr1\t1000\n\nchr2\t2000\nchrM\t500\n")
	g, err := ReadGenome(r)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Names(); len(got) != 3 || got[0] != "chr1" || got[1] != "chr2" || got[2] != "chrM" {
		t.Errorf("Names() = %v, want [chr1 chr2 chrM]", got)
	}
	if l, ok := g.Len("chr2"); !ok || l != 2000 {
		t.Errorf("Len(chr2) = %d,%v, want 2000,true", l, ok)
	}
	if _, ok := g.Len("chrX"); ok {
		t.Error("Len(chrX) should be unknown")
	}
	if g.TotalBases() != 3500 {
		t.Errorf("TotalBases() = %d, want 3500", g.TotalBases())
	}
}

func TestReadGenomeMalformed(t *testing.T) {
	cases := []string{
		"chr1\n",
		"chr1\tnotanumber\n",
		"chr1\t-5\n",
	}
	for _, in := range cases {
		if _, err := ReadGenome(strings.NewReader(in)); err == nil {
			t.Errorf("ReadGenome(%q): expected error", in)
		}
	}
}

func TestGenomeAddOverwritesLengthKeepsOrder(t *testing.T) {
	g := NewGenome()
	g.Add("chr1", 100)
	g.Add("chr2", 200)
	g.Add("chr1", 150)
	if len(g.Names()) != 2 {
		t.Fatalf("Names() = %v, want 2 entries", g.Names())
	}
	if l, _ := g.Len("chr1"); l != 150 {
		t.Errorf("Len(chr1) = %d, want 150 after overwrite", l)
	}
}
