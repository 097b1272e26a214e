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

// Package cli wires bedtk's cobra command tree: one file per
// subcommand, a shared Options built once from persistent flags, and a
// thin translation from bed/ops/bederr failures to process exit codes
// - the same split as unikmer/cmd, generalized from a single binary
// flag set to the interval-toolkit surface of spec §4.6.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/bed/bederr"
)

// RootCmd is the base command when bedtk is called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "bedtk",
	Short: "A toolkit for genomic interval (BED) set operations",
	Long: `bedtk - a toolkit for genomic interval (BED) set operations

A command-line toolkit providing intersect/subtract/coverage/closest/
window/merge/complement/genomecov/multiinter/jaccard/sort over sorted
BED streams, processed with bounded memory via a k-way synchronized
sweep.

Author: Wei Shen <shenwei356@gmail.com>
`,
}

// Execute adds all child commands to RootCmd and runs it. Called once
// from cmd/bedtk/main.go.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads(), "number of CPUs to use")
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "set Options.Verbose (no subcommand prints extra output for it)")
	RootCmd.PersistentFlags().Bool("bedtools-compat", false, "treat zero-length (point) B intervals as overlapping at their single position, matching bedtools")
	RootCmd.PersistentFlags().Bool("assume-sorted", false, "skip the sort-order check on inputs (undefined output if actually unsorted)")
	RootCmd.PersistentFlags().Int("buffer-size", 0, "I/O buffer size in bytes (0 = default); stored in Options.BufferSize, the readers and writers keep their own buffer sizes")
	RootCmd.PersistentFlags().Int64("sort-memory", 0, "max records held per in-memory chunk before the external sort spills to disk (0 = default)")
}

// exitCodeFor maps a bederr.Error to its taxonomy exit code (spec §7),
// defaulting to 1 for errors from outside the taxonomy (flag parsing,
// os-level failures cobra itself already handles).
func exitCodeFor(err error) int {
	if be, ok := err.(*bederr.Error); ok {
		return int(be.Kind.ExitCode())
	}
	return 1
}
