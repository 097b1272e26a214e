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

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/ops"
	"github.com/shenwei356/bedtk/bed/sweep"
)

var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "report overlaps between two sorted BED streams",
	Long: `intersect reports the overlaps between each record of -a and every
matching record of -b (spec §4.6). With no report flag it emits the
overlap interval itself; -wa/-wb/-u/-v/-c change the reported shape.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		flags := ops.IntersectFlags{
			WriteA: getFlagBool(cmd, "wa"),
			WriteB: getFlagBool(cmd, "wb"),
			U:      getFlagBool(cmd, "u"),
			V:      getFlagBool(cmd, "v"),
			C:      getFlagBool(cmd, "c"),
			F:      getFlagFloat64(cmd, "f"),
			R:      getFlagBool(cmd, "r"),
		}
		checkError(flags.Validate())

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
		reducer := ops.NewIntersect(cfg, flags, out)
		engine := sweep.NewEngine(aSrc, bSrc, sweep.NoLookahead, reducer)
		checkError(engine.Run())
	},
}

func init() {
	RootCmd.AddCommand(intersectCmd)

	intersectCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	intersectCmd.Flags().StringP("b", "b", "", "file B (sorted BED)")
	intersectCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	intersectCmd.Flags().Bool("wa", false, "write the original A entry for each overlap")
	intersectCmd.Flags().Bool("wb", false, "write the original B entry for each overlap")
	intersectCmd.Flags().BoolP("u", "u", false, "emit A once if it overlaps anything in B")
	intersectCmd.Flags().BoolP("v", "v", false, "emit A only if it overlaps nothing in B")
	intersectCmd.Flags().BoolP("c", "c", false, "append the number of overlaps with B")
	intersectCmd.Flags().Float64P("f", "f", 0, "minimum overlap fraction of A required")
	intersectCmd.Flags().BoolP("r", "r", false, "require -f fraction reciprocally of B too")
}
