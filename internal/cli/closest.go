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

var closestCmd = &cobra.Command{
	Use:   "closest",
	Short: "report the closest B interval(s) to each A interval",
	Long: `closest reports, for each A interval, the nearest B interval(s) on
the same chromosome (spec §4.6): an overlapping B always wins; with
no overlap the nearer of the upstream and downstream candidates is
reported, both on a tie unless -t narrows it down. -io skips
overlapping B, -iu/-id drop
upstream/downstream candidates, -D N caps candidates to |distance| <=
N, and -d appends the signed distance column.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		tie := ops.TieAll
		switch getFlagString(cmd, "t") {
		case "first":
			tie = ops.TieFirst
		case "last":
			tie = ops.TieLast
		}

		flags := ops.ClosestFlags{
			Tie:              tie,
			IgnoreOverlap:    getFlagBool(cmd, "io"),
			IgnoreUpstream:   getFlagBool(cmd, "iu"),
			IgnoreDownstream: getFlagBool(cmd, "id"),
			Signed:           getFlagBool(cmd, "d"),
		}
		if cmd.Flags().Changed("D") {
			flags.MaxDistance = getFlagInt64(cmd, "D")
			flags.MaxDistanceSet = true
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

		reducer := ops.NewClosest(flags, out)
		engine := sweep.NewEngine(aSrc, bSrc, sweep.NoLookahead, reducer)
		checkError(engine.Run())
	},
}

func init() {
	RootCmd.AddCommand(closestCmd)

	closestCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	closestCmd.Flags().StringP("b", "b", "", "file B (sorted BED)")
	closestCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	closestCmd.Flags().String("t", "all", "tie-break: all, first (upstream) or last (downstream)")
	closestCmd.Flags().Bool("io", false, "ignore overlapping B, always report the nearest non-overlapping one")
	closestCmd.Flags().Bool("iu", false, "ignore upstream B candidates")
	closestCmd.Flags().Bool("id", false, "ignore downstream B candidates")
	closestCmd.Flags().Int64P("D", "D", 0, "cap candidates to |distance| <= N")
	closestCmd.Flags().BoolP("d", "d", false, "report signed distance (upstream negative, downstream positive)")
}
