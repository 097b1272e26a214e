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
	"bytes"
	"io"

	"github.com/shenwei356/bedtk/bed/bedio"
)

// LineReader is a pull-based line source: either a buffered io.Reader or
// a memory-mapped file (spec §4.7's "records cross buffer boundaries
// cleanly" requirement is met by bufio.Reader.ReadBytes on the
// buffered path, and by direct index-of-newline on the
// mapped path).
type LineReader struct {
	br     *bufio.Reader
	mapped *bedio.MappedFile
	file   string
	lineNo int64
}

// NewLineReader wraps a buffered reader (stdin or a non-mmap-eligible
// file) as a LineReader.
func NewLineReader(br *bufio.Reader, file string) *LineReader {
	return &LineReader{br: br, file: file}
}

// NewMappedLineReader wraps a memory-mapped file as a LineReader.
func NewMappedLineReader(m *bedio.MappedFile, file string) *LineReader {
	return &LineReader{mapped: m, file: file}
}

// nextLine returns the next raw line, without its trailing newline.
func (lr *LineReader) nextLine() ([]byte, error) {
	if lr.mapped != nil {
		line, ok := lr.mapped.NextLine()
		if !ok {
			return nil, io.EOF
		}
		return line, nil
	}
	line, err := lr.br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(line) == 0 && err == io.EOF {
		return nil, io.EOF
	}
	line = bytes.TrimRight(line, "\r\n")
	return line, nil
}

// Next implements Source: parses the next data line, skipping blank and
// pass-through (#, track, browser) lines per spec §6.
func (lr *LineReader) Next() (*Record, error) {
	for {
		line, err := lr.nextLine()
		if err != nil {
			return nil, err
		}
		lr.lineNo++
		if len(line) == 0 || bedio.ShouldPassThrough(line) {
			continue
		}
		return ParseAt(line, lr.file, lr.lineNo)
	}
}

// RawSource forwards every raw line unchanged, including pass-through
// lines, used by sort's identity pass (spec §6: "lines beginning with
// #, track, or browser are passed through unchanged only in sort's
// identity pass").
type RawSource struct {
	lr *LineReader
}

// NewRawSource wraps lr to also surface pass-through lines as records
// with a nil Chrom sentinel marking "verbatim passthrough" in Tail.
func NewRawSource(lr *LineReader) *RawSource { return &RawSource{lr: lr} }

// passthroughRecord builds the record RawSource.Next returns for
// comment/track/browser lines: Chrom is nil and Tail holds a copy of the
// verbatim line bytes.
func passthroughRecord(line []byte) *Record {
	buf := make([]byte, len(line))
	copy(buf, line)
	return &Record{ChromID: -1, Tail: buf}
}

// IsPassthrough reports whether r was produced by RawSource for a
// pass-through line (Chrom is nil in that case).
func IsPassthrough(r *Record) bool { return r.Chrom == nil }

// Next returns the next record, parsed if it is data, or wrapped
// verbatim if it is a pass-through/comment line.
func (s *RawSource) Next() (*Record, error) {
	line, err := s.lr.nextLine()
	if err != nil {
		return nil, err
	}
	s.lr.lineNo++
	if len(line) == 0 {
		return s.Next()
	}
	if bedio.ShouldPassThrough(line) {
		return passthroughRecord(line), nil
	}
	return ParseAt(line, s.lr.file, s.lr.lineNo)
}
