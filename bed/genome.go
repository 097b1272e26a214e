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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Genome is an ordered list of (name, length) pairs. It fixes chromosome
// order for sort and defines per-chromosome bounds for complement and
// genomecov (spec §3).
type Genome struct {
	order  []string
	length map[string]int64
}

// NewGenome creates an empty genome table.
func NewGenome() *Genome {
	return &Genome{length: make(map[string]int64)}
}

// Add appends a (name, length) pair, preserving file order.
func (g *Genome) Add(name string, length int64) {
	if _, ok := g.length[name]; ok {
		g.length[name] = length
		return
	}
	g.order = append(g.order, name)
	g.length[name] = length
}

// Len returns the chromosome length, or (0, false) if unknown.
func (g *Genome) Len(name string) (int64, bool) {
	l, ok := g.length[name]
	return l, ok
}

// Names returns the chromosome names in genome-file order.
func (g *Genome) Names() []string { return g.order }

// ReadGenome parses a two-column "name\tlength" genome file (§6). Blank
// lines are ignored; order in the file defines sort order when used with
// -g.
func ReadGenome(r io.Reader) (*Genome, error) {
	g := NewGenome()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var lineNo int64
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("genome file line %d: expected 2 tab-separated columns", lineNo)
		}
		length, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("genome file line %d: invalid length %q", lineNo, fields[1])
		}
		g.Add(fields[0], length)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// TotalBases returns the sum of all chromosome lengths, for --verbose
// logging (humanize.Comma formats it for display).
func (g *Genome) TotalBases() int64 {
	var total int64
	for _, n := range g.order {
		total += g.length[n]
	}
	return total
}

// SummaryLine renders a one-line human-readable summary, e.g. for
// --verbose logging of a loaded genome file.
func (g *Genome) SummaryLine() string {
	return fmt.Sprintf("%d chromosomes, %s bases", len(g.order), humanize.Comma(g.TotalBases()))
}
