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

package bedio

import (
	"bytes"
	"os"
)

// MmapSupported reports whether the memory-mapped read path is available
// on this platform (linux only; see mmap_linux.go / mmap_other.go).
func MmapSupported() bool { return mmapSupported }

// MappedFile is a memory-mapped regular file opened for line-at-a-time,
// copy-free parsing. It is only used when the source is a regular file,
// is not gzip-compressed, and the caller opted in (spec §4.7).
type MappedFile struct {
	f    *os.File
	data []byte
	pos  int
}

// OpenMapped mmaps file read-only. Returns (nil, false, nil) when mmap is
// unsupported or unsuitable (stdin, gzip), signalling the caller to fall
// back to InStream.
func OpenMapped(file string) (*MappedFile, bool, error) {
	if IsStdio(file) || !mmapSupported {
		return nil, false, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, false, err
	}
	peek := make([]byte, 2)
	n, _ := f.Read(peek)
	if n == 2 && peek[0] == 0x1f && peek[1] == 0x8b {
		f.Close()
		return nil, false, nil // gzip: fall back to the buffered+pgzip path
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, false, err
	}
	data, err := mmapFile(f)
	if err != nil {
		f.Close()
		return nil, false, err
	}
	return &MappedFile{f: f, data: data}, true, nil
}

// NextLine returns the next newline-terminated line (without the
// trailing '\n'), or (nil, false) at end of file. The returned slice
// aliases the mapped memory and must not be retained past Close.
func (m *MappedFile) NextLine() ([]byte, bool) {
	if m.pos >= len(m.data) {
		return nil, false
	}
	rest := m.data[m.pos:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		line := rest
		m.pos = len(m.data)
		if len(line) == 0 {
			return nil, false
		}
		return trimCR(line), true
	}
	line := rest[:i]
	m.pos += i + 1
	return trimCR(line), true
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}

// Close unmaps and closes the underlying file.
func (m *MappedFile) Close() error {
	err := munmap(m.data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
