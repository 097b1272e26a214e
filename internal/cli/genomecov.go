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

var genomecovCmd = &cobra.Command{
	Use:   "genomecov",
	Short: "report the per-position depth profile of a BED stream",
	Long: `genomecov reports, per chromosome of -g, the depth profile of -i
(spec §4.6): by default a histogram of bases at each depth, per
chromosome and genome-wide; -bga emits one bedGraph row per
constant-depth run including depth-0 gaps; -bg emits the same but
omits depth-0 runs; -d emits one row per position (1-based),
depth-0 positions included.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		gFile := getFlagString(cmd, "g")
		checkFileExists(gFile)
		genome, err := loadGenome(gFile)
		checkError(err)

		flags := ops.GenomecovFlags{
			PerBase:   getFlagBool(cmd, "d"),
			BedGraph:  getFlagBool(cmd, "bg"),
			AllRuns:   getFlagBool(cmd, "bga"),
			Scale:     getFlagFloat64(cmd, "scale"),
			Trackline: getFlagBool(cmd, "trackline"),
		}

		file := getFlagString(cmd, "i")
		checkFileExists(file)

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		in := newInterner(genome)
		src, srcClose, err := openSource(file, opt, in)
		checkError(err)
		defer srcClose()

		cfg := ops.Config{BedtoolsCompatible: opt.BedtoolsCompatible, Genome: genome}
		op := ops.NewGenomecov(cfg, flags, out)
		checkError(op.Run(src))
	},
}

func init() {
	RootCmd.AddCommand(genomecovCmd)

	genomecovCmd.Flags().StringP("i", "i", "-", "input file (sorted BED, in genome -g order)")
	genomecovCmd.Flags().StringP("g", "g", "", "genome file: two-column name\\tlength (required)")
	genomecovCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	genomecovCmd.Flags().BoolP("d", "d", false, "report depth at every position (1-based)")
	genomecovCmd.Flags().Bool("bg", false, "report non-zero-depth runs in bedGraph format")
	genomecovCmd.Flags().Bool("bga", false, "report all runs, including depth 0, in bedGraph format")
	genomecovCmd.Flags().Float64("scale", 0, "scale reported depth by this factor (bedGraph and -d output; not the histogram)")
	genomecovCmd.Flags().Bool("trackline", false, "emit a UCSC bedGraph track header line first")
}
