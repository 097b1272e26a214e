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

// Package config collects the global, CLI-wide options every bedtk
// subcommand reads, the same role unikmer/cmd/util.go's Options plays
// for the teacher.
package config

import (
	"os"
	"strconv"
)

// Options are the persistent, cross-subcommand settings (spec §9's
// ambient configuration layer).
type Options struct {
	NumCPUs            int
	Verbose            bool
	BedtoolsCompatible bool  // --bedtools-compat: zero-length interval overlap policy (spec §9)
	AssumeSorted       bool  // --assume-sorted: skip the sort-order validator
	BufferSize         int   // requested I/O buffer size in bytes; bed/bedio does not read it
	SortMemory         int64 // external sort's in-memory record budget before spilling
}

// Environment variable names overriding the matching flag defaults, read
// once at startup the way the teacher's tools read nothing from the
// environment but cobra's own flag defaults - bedtk adds these three
// since the external sort's memory/thread footprint is often tuned per
// host rather than per invocation.
const (
	EnvThreads    = "BEDTK_THREADS"
	EnvBufferSize = "BEDTK_BUFFER_SIZE"
	EnvSortMemory = "BEDTK_SORT_MEMORY"
)

// Default values used when neither a flag nor an env var sets them.
const (
	DefaultBufferSize = 64 * 1024
	DefaultSortMemory = 2_000_000
)

// EnvThreadsOverride returns BEDTK_THREADS as an int if set and valid.
func EnvThreadsOverride() (int, bool) {
	return envInt(EnvThreads)
}

// EnvBufferSizeOverride returns BEDTK_BUFFER_SIZE as an int if set and valid.
func EnvBufferSizeOverride() (int, bool) {
	return envInt(EnvBufferSize)
}

// EnvSortMemoryOverride returns BEDTK_SORT_MEMORY as an int64 if set and valid.
func EnvSortMemoryOverride() (int64, bool) {
	v, ok := os.LookupEnv(EnvSortMemory)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
