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

import "testing"

func TestInternerAppearanceOrder(t *testing.T) {
	in := NewInterner(AppearanceOrder)
	id1, err := in.Intern([]byte("chr2"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := in.Intern([]byte("chr1"))
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 0 || id2 != 1 {
		t.Errorf("ids = %d,%d, want 0,1 (first-seen order)", id1, id2)
	}
	// re-interning returns the same id.
	again, err := in.Intern([]byte("chr2"))
	if err != nil || again != id1 {
		t.Errorf("re-intern chr2 = %d,%v, want %d,nil", again, err, id1)
	}
	if in.Name(0) != "chr2" || in.Name(1) != "chr1" {
		t.Errorf("Name lookups wrong: %q, %q", in.Name(0), in.Name(1))
	}
	if in.Len() != 2 {
		t.Errorf("Len() = %d, want 2", in.Len())
	}
}

func TestInternerLexicographicFinalize(t *testing.T) {
	in := NewInterner(Lexicographic)
	for _, name := range []string{"chr10", "chr2", "chr1"} {
		if _, err := in.Intern([]byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	remap := in.Finalize()
	if remap == nil {
		t.Fatal("Finalize returned nil remap for Lexicographic mode")
	}
	// lexicographic byte order: chr1 < chr10 < chr2
	want := []string{"chr1", "chr10", "chr2"}
	for i, name := range want {
		if in.Name(int32(i)) != name {
			t.Errorf("Name(%d) = %q, want %q", i, in.Name(int32(i)), name)
		}
	}
	if id, ok := in.Lookup([]byte("chr2")); !ok || id != 2 {
		t.Errorf("Lookup(chr2) = %d,%v, want 2,true", id, ok)
	}
	if _, err := in.Intern([]byte("chrNew")); err == nil {
		t.Error("Intern after Finalize in Lexicographic mode should error")
	}
}

func TestInternerGenomeOrderStrict(t *testing.T) {
	g := NewGenome()
	g.Add("chr1", 1000)
	g.Add("chr2", 2000)
	in := NewInternerFromGenome(g, false)

	id, err := in.Intern([]byte("chr2"))
	if err != nil || id != 1 {
		t.Errorf("Intern(chr2) = %d,%v, want 1,nil", id, err)
	}
	if _, err := in.Intern([]byte("chrX")); err == nil {
		t.Error("Intern(chrX) with AllowNewChroms=false should error")
	}
}

func TestInternerGenomeOrderAllowNew(t *testing.T) {
	g := NewGenome()
	g.Add("chr1", 1000)
	in := NewInternerFromGenome(g, true)

	if _, err := in.Intern([]byte("chr1")); err != nil {
		t.Fatal(err)
	}
	id, err := in.Intern([]byte("chrX"))
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("new chromosome id = %d, want 1 (appended)", id)
	}
}
