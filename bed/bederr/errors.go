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

// Package bederr defines the error taxonomy surfaced by the bedtk engine
// and the exit code each category maps to at the CLI boundary.
package bederr

import "fmt"

// ExitCode is the process exit status a driver should use for an error
// originating in this package.
type ExitCode int

// Exit codes, per the command surface contract.
const (
	ExitUsage       ExitCode = 1
	ExitMalformed   ExitCode = 2
	ExitUnsorted    ExitCode = 3
	ExitIO          ExitCode = 4
)

// Kind identifies one of the taxonomy categories.
type Kind int

const (
	KindMalformedRecord Kind = iota
	KindUnsortedInput
	KindUnknownChromosome
	KindCoordinateOverflow
	KindIoError
	KindCompatibilityConflict
)

func (k Kind) String() string {
	switch k {
	case KindMalformedRecord:
		return "MalformedRecord"
	case KindUnsortedInput:
		return "UnsortedInput"
	case KindUnknownChromosome:
		return "UnknownChromosome"
	case KindCoordinateOverflow:
		return "CoordinateOverflow"
	case KindIoError:
		return "IoError"
	case KindCompatibilityConflict:
		return "CompatibilityConflict"
	}
	return "Unknown"
}

// ExitCode returns the process exit status for this kind.
func (k Kind) ExitCode() ExitCode {
	switch k {
	case KindUnsortedInput:
		return ExitUnsorted
	case KindIoError:
		return ExitIO
	case KindCompatibilityConflict:
		return ExitUsage
	default:
		return ExitMalformed
	}
}

// Error is a typed, positioned error in the bedtk taxonomy.
type Error struct {
	Kind   Kind
	File   string
	Line   int64 // 1-based record number, 0 if not applicable
	Offset int64 // byte offset, -1 if not applicable
	Msg    string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (file=%s record=%d)", e.Kind, e.Msg, e.File, e.Line)
	}
	return fmt.Sprintf("%s: %s (file=%s)", e.Kind, e.Msg, e.File)
}

// New builds an Error not tied to a particular file/record.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Offset: -1}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Offset: -1}
}

// WithFile attaches file/record-number context, mirroring the way the
// teacher wraps errors with errors.Wrap(err, file) at each call site.
func (e *Error) WithFile(file string, line int64) *Error {
	e2 := *e
	e2.File = file
	e2.Line = line
	return &e2
}

// MalformedRecord builds a parse-time error.
func MalformedRecord(file string, line int64, reason string) *Error {
	return (&Error{Kind: KindMalformedRecord, Offset: -1, Msg: reason}).WithFile(file, line)
}

// UnsortedInput builds a sort-order-violation error.
func UnsortedInput(file string, line int64, prev, cur string) *Error {
	return (&Error{
		Kind:   KindUnsortedInput,
		Offset: -1,
		Msg:    fmt.Sprintf("record %d is out of order: %q follows %q", line, cur, prev),
	}).WithFile(file, line)
}

// UnknownChromosome builds a genome-table-lookup error.
func UnknownChromosome(file string, chrom string) *Error {
	return (&Error{Kind: KindUnknownChromosome, Offset: -1, Msg: fmt.Sprintf("chromosome %q not present in genome table", chrom)}).WithFile(file, 0)
}

// CoordinateOverflow builds a coordinate-overflow error.
func CoordinateOverflow(file string, line int64, field string) *Error {
	return (&Error{Kind: KindCoordinateOverflow, Offset: -1, Msg: fmt.Sprintf("%s coordinate overflows 64 bits", field)}).WithFile(file, line)
}

// IoError wraps an underlying I/O failure.
func IoError(file string, cause error) *Error {
	return (&Error{Kind: KindIoError, Offset: -1, Msg: cause.Error()}).WithFile(file, 0)
}

// CompatibilityConflict flags mutually exclusive flags.
func CompatibilityConflict(msg string) *Error {
	return New(KindCompatibilityConflict, msg)
}
