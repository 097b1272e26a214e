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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/bed/ops"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "merge overlapping or nearby intervals in a sorted BED stream",
	Long: `merge collapses overlapping (or, with -d, nearby) intervals of a
single sorted input into their spanning interval (spec §4.6). -s
keeps + and - strand runs from merging into each other; -c appends
the count of intervals folded into each merged run.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		flags := ops.MergeFlags{
			Distance: getFlagNonNegativeInt64(cmd, "d"),
			ByStrand: getFlagBool(cmd, "s"),
			Count:    getFlagBool(cmd, "c"),
		}

		file := getFlagString(cmd, "i")
		checkFileExists(file)

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		in := newInterner(nil)
		src, srcClose, err := openSource(file, opt, in)
		checkError(err)
		defer srcClose()

		op := ops.NewMerge(flags, out)
		checkError(op.Run(src))
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("i", "i", "-", "input file (sorted BED)")
	mergeCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	mergeCmd.Flags().Int64P("d", "d", 0, "merge intervals up to this far apart")
	mergeCmd.Flags().BoolP("s", "s", false, "keep +/- strand runs from merging together")
	mergeCmd.Flags().BoolP("c", "c", false, "append the count of merged intervals")
}
