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
	"github.com/shenwei356/bedtk/bed/sweep"
)

var subtractCmd = &cobra.Command{
	Use:   "subtract",
	Short: "remove B's coverage from each A interval",
	Long: `subtract emits the pieces of each A interval not covered by the
union of overlapping B intervals (spec §4.6). -A drops A entirely on
any overlap instead of emitting the remainder.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		flags := ops.SubtractFlags{
			A: getFlagBool(cmd, "A"),
			F: getFlagFloat64(cmd, "f"),
		}

		aFile := getFlagString(cmd, "a")
		bFile := getFlagString(cmd, "b")
		checkFileExists(aFile)
		checkFileExists(bFile)

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		in := newInterner(nil)
		aSrc, aClose, err := openSource(aFile, opt, in)
		checkError(err)
		defer aClose()
		bSrc, bClose, err := openSource(bFile, opt, in)
		checkError(err)
		defer bClose()

		cfg := ops.Config{BedtoolsCompatible: opt.BedtoolsCompatible}
		reducer := ops.NewSubtract(cfg, flags, out)
		engine := sweep.NewEngine(aSrc, bSrc, sweep.NoLookahead, reducer)
		checkError(engine.Run())
	},
}

func init() {
	RootCmd.AddCommand(subtractCmd)

	subtractCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	subtractCmd.Flags().StringP("b", "b", "", "file B (sorted BED)")
	subtractCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	subtractCmd.Flags().BoolP("A", "A", false, "remove an A entry entirely on any overlap")
	subtractCmd.Flags().Float64P("f", "f", 0, "minimum overlap fraction of A to subtract")
}
