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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/extsort"
	"github.com/shenwei356/bedtk/bed/ops"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "sort a BED stream, spilling to disk past the in-memory budget",
	Long: `sort reads an unordered stream, orders it by chromosome then -k's
key, and writes the merged result (spec §4.4/§4.6). Past
--sort-memory records per chunk it spills sorted chunks to a
temporary directory and k-way merges them back, so memory stays
bounded regardless of input size.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var genome *bed.Genome
		if g := getFlagString(cmd, "g"); g != "" {
			checkFileExists(g)
			var err error
			genome, err = loadGenome(g)
			checkError(err)
		}

		mode := bed.AppearanceOrder
		switch getFlagString(cmd, "chrom-order") {
		case "lexicographic":
			mode = bed.Lexicographic
		case "genome":
			if genome == nil {
				checkError(fmt.Errorf("--chrom-order genome requires -g"))
			}
			mode = bed.GenomeOrder
		}

		var in *bed.Interner
		if mode == bed.GenomeOrder {
			in = bed.NewInternerFromGenome(genome, getFlagBool(cmd, "allow-new-chroms"))
		} else {
			in = bed.NewInterner(mode)
		}

		keyMode := bed.KeyStartEnd
		switch getFlagString(cmd, "k") {
		case "size-asc":
			keyMode = bed.KeySizeAsc
		case "size-desc":
			keyMode = bed.KeySizeDesc
		case "name-only":
			keyMode = bed.KeyNameOnly
		}

		file := getFlagString(cmd, "i")
		checkFileExists(file)

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		raw, rawClose, err := openRawSource(file)
		checkError(err)
		defer rawClose()

		tmpDir, err := os.MkdirTemp("", "bedtk-sort-")
		checkError(err)
		defer os.RemoveAll(tmpDir)

		sortOpt := extsort.Options{
			Interner:     in,
			Mode:         keyMode,
			MemoryBudget: opt.SortMemory,
			Unique:       getFlagBool(cmd, "unique"),
			NumCPUs:      opt.NumCPUs,
			TmpDir:       tmpDir,
		}

		op := ops.NewSort(sortOpt, out)
		checkError(op.Run(raw))
	},
}

func init() {
	RootCmd.AddCommand(sortCmd)

	sortCmd.Flags().StringP("i", "i", "-", "input file (unordered BED)")
	sortCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	sortCmd.Flags().StringP("g", "g", "", "genome file fixing chromosome order, required by --chrom-order genome")
	sortCmd.Flags().String("chrom-order", "appearance", "chromosome ordering: appearance, lexicographic or genome")
	sortCmd.Flags().Bool("allow-new-chroms", false, "with --chrom-order genome, append chromosomes absent from -g instead of erroring")
	sortCmd.Flags().StringP("k", "k", "start-end", "record key: start-end, size-asc, size-desc or name-only")
	sortCmd.Flags().Bool("unique", false, "drop duplicate (chrom, start, end) triples")
}
