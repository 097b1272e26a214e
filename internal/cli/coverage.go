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

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "report depth/fraction of B's coverage over each A interval",
	Long: `coverage reports, for each A interval, how much of it is covered by
B (spec §4.6): by default the overlap count, covered bases, A's
length and the covered fraction; -mean/-hist/-d switch to a mean
depth, a per-depth histogram, or a per-base row respectively.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		mode := ops.CoverageDefault
		switch {
		case getFlagBool(cmd, "mean"):
			mode = ops.CoverageMean
		case getFlagBool(cmd, "hist"):
			mode = ops.CoverageHist
		case getFlagBool(cmd, "d"):
			mode = ops.CoveragePerBase
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
		reducer := ops.NewCoverage(cfg, mode, out)
		engine := sweep.NewEngine(aSrc, bSrc, sweep.NoLookahead, reducer)
		checkError(engine.Run())
	},
}

func init() {
	RootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	coverageCmd.Flags().StringP("b", "b", "", "file B (sorted BED)")
	coverageCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	coverageCmd.Flags().Bool("mean", false, "report mean depth instead of the default summary")
	coverageCmd.Flags().Bool("hist", false, "report a histogram of depth values instead")
	coverageCmd.Flags().BoolP("d", "d", false, "report depth at every position of A")
}
