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

var complementCmd = &cobra.Command{
	Use:   "complement",
	Short: "report the gaps not covered by a sorted BED stream",
	Long: `complement walks the chromosomes of -g in file order and emits the
intervals of each not covered by -i's matching run of records (spec
§4.6); a genome file is required since complement needs chromosome
bounds to report the trailing gap.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		gFile := getFlagString(cmd, "g")
		checkFileExists(gFile)
		genome, err := loadGenome(gFile)
		checkError(err)

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
		op := ops.NewComplement(cfg, out)
		checkError(op.Run(src))
	},
}

func init() {
	RootCmd.AddCommand(complementCmd)

	complementCmd.Flags().StringP("i", "i", "-", "input file (sorted BED, in genome -g order)")
	complementCmd.Flags().StringP("g", "g", "", "genome file: two-column name\\tlength (required)")
	complementCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
}
