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

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "report B overlaps within a padded window around each A interval",
	Long: `window is intersect with each A interval padded by -l/-r (or -w for
both) before the overlap test against B (spec §4.6).
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		w := getFlagNonNegativeInt64(cmd, "w")
		left, right := w, w
		if cmd.Flags().Changed("l") {
			left = getFlagNonNegativeInt64(cmd, "l")
		}
		if cmd.Flags().Changed("r") {
			right = getFlagNonNegativeInt64(cmd, "r")
		}

		flags := ops.WindowFlags{
			Left:  left,
			Right: right,
			U:     getFlagBool(cmd, "u"),
			V:     getFlagBool(cmd, "v"),
			C:     getFlagBool(cmd, "c"),
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

		reducer := ops.NewWindow(flags, out)
		lookahead := sweep.Lookahead{Left: left, Right: right}
		engine := sweep.NewEngine(aSrc, bSrc, lookahead, reducer)
		checkError(engine.Run())
	},
}

func init() {
	RootCmd.AddCommand(windowCmd)

	windowCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	windowCmd.Flags().StringP("b", "b", "", "file B (sorted BED)")
	windowCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	windowCmd.Flags().Int64P("w", "w", 0, "pad both sides of A by this many bases")
	windowCmd.Flags().Int64("l", 0, "pad A's left side by this many bases (overrides -w)")
	windowCmd.Flags().Int64("r", 0, "pad A's right side by this many bases (overrides -w)")
	windowCmd.Flags().BoolP("u", "u", false, "emit A once if it overlaps anything in the padded window")
	windowCmd.Flags().BoolP("v", "v", false, "emit A only if it overlaps nothing in the padded window")
	windowCmd.Flags().BoolP("c", "c", false, "append the number of overlaps within the padded window")
}
