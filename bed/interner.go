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

// Mode selects how the Interner assigns chromosome IDs.
type Mode int

// Interner modes, per spec §3/§4.2.
const (
	// AppearanceOrder assigns ids in the order names are first seen.
	AppearanceOrder Mode = iota
	// Lexicographic assigns ids by sorting name bytes once interning is
	// sealed with Finalize.
	Lexicographic
	// GenomeOrder pre-populates ids from a Genome table; new names are
	// either appended (AllowNewChroms true) or rejected.
	GenomeOrder
)

// Interner is the sole authority for chromosome name -> id comparisons.
// It is built once (optionally pre-populated from a Genome) and is
// read-only thereafter; name bytes are compared only at interning time,
// never again during sort/sweep, matching the read-only-after-construction
// shape of the teacher's Taxonomy.
type Interner struct {
	mode           Mode
	AllowNewChroms bool // GenomeOrder only: append unseen names at the end

	byName map[string]int32
	names  []string
	sealed bool
}

// NewInterner creates an empty interner in the given mode.
func NewInterner(mode Mode) *Interner {
	return &Interner{
		mode:   mode,
		byName: make(map[string]int32, 64),
		names:  make([]string, 0, 64),
	}
}

// NewInternerFromGenome creates a GenomeOrder interner pre-populated from
// g, in the genome file's order.
func NewInternerFromGenome(g *Genome, allowNew bool) *Interner {
	in := &Interner{
		mode:           GenomeOrder,
		AllowNewChroms: allowNew,
		byName:         make(map[string]int32, len(g.order)),
		names:          make([]string, len(g.order)),
	}
	for i, name := range g.order {
		in.byName[name] = int32(i)
		in.names[i] = name
	}
	return in
}

// Intern returns the id for name, assigning a new one if unseen and the
// mode permits it.
func (in *Interner) Intern(name []byte) (int32, error) {
	if id, ok := in.byName[string(name)]; ok {
		return id, nil
	}
	if in.mode == GenomeOrder && !in.AllowNewChroms {
		return 0, bederr.UnknownChromosome("", string(name))
	}
	if in.sealed && in.mode == Lexicographic {
		// Lexicographic order is only meaningful once Finalize has run;
		// interning after that would leave a name without a stable
		// ordinal, so treat it the same as a strict-mode rejection.
		return 0, bederr.UnknownChromosome("", string(name))
	}
	id := int32(len(in.names))
	s := string(name)
	in.byName[s] = id
	in.names = append(in.names, s)
	return id, nil
}

// Lookup returns the id for name without assigning a new one.
func (in *Interner) Lookup(name []byte) (int32, bool) {
	id, ok := in.byName[string(name)]
	return id, ok
}

// Name returns the interned name for id.
func (in *Interner) Name(id int32) string {
	return in.names[id]
}

// Len returns the number of distinct interned chromosomes.
func (in *Interner) Len() int { return len(in.names) }

// Finalize seals the interner. For Lexicographic mode it remaps every id
// to lexicographic rank over the name bytes seen so far (stable otherwise
// on first-appearance order, since sort.Slice is not required to be
// stable but ties can't occur on distinct names); for the other modes it
// is a no-op beyond preventing further appearance-order growth in
// Lexicographic mode.
func (in *Interner) Finalize() map[int32]int32 {
	if in.mode != Lexicographic {
		in.sealed = true
		return nil
	}
	old := in.names
	order := make([]int, len(old))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return old[order[i]] < old[order[j]] })

	remap := make(map[int32]int32, len(old))
	newNames := make([]string, len(old))
	for newID, oldID := range order {
		remap[int32(oldID)] = int32(newID)
		newNames[newID] = old[oldID]
	}
	in.names = newNames
	newByName := make(map[string]int32, len(old))
	for name, oldID := range in.byName {
		newByName[name] = remap[oldID]
	}
	in.byName = newByName
	in.sealed = true
	return remap
}
