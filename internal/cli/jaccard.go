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
	"io"

	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/bedio"
	"github.com/shenwei356/bedtk/bed/ops"
	"github.com/shenwei356/bedtk/bed/sweep"
	"github.com/shenwei356/bedtk/internal/config"
)

var jaccardCmd = &cobra.Command{
	Use:   "jaccard",
	Short: "report the Jaccard statistic between two sorted BED streams",
	Long: `jaccard reports intersection length, union length, the Jaccard
ratio and the number of intersecting A/B pairs between -a and -b
(spec §4.6). -b must be a regular file: its total length is summed
in a first pass before the sweep that computes the intersection.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		aFile := getFlagString(cmd, "a")
		bFile := getFlagString(cmd, "b")
		checkFileExists(aFile)
		checkFileExists(bFile)
		if bedio.IsStdio(bFile) {
			checkError(fmt.Errorf("jaccard requires -b to be a regular file, not stdin"))
		}

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

		// spec §4.6: jaccard first merges A and B, so self-overlapping
		// input in either file doesn't double-count interLen/aLen.
		mergedA := ops.NewMergedSource(aSrc)
		mergedB := ops.NewMergedSource(bSrc)

		bLen, err := sumLengths(bFile, opt, in)
		checkError(err)

		cfg := ops.Config{BedtoolsCompatible: opt.BedtoolsCompatible}
		reducer := ops.NewJaccard(cfg, out)
		engine := sweep.NewEngine(mergedA, mergedB, sweep.NoLookahead, reducer)
		checkError(engine.Run())
		reducer.Report(bLen)
	},
}

func init() {
	RootCmd.AddCommand(jaccardCmd)

	jaccardCmd.Flags().StringP("a", "a", "-", "file A (sorted BED)")
	jaccardCmd.Flags().StringP("b", "b", "", "file B (sorted BED, must be a regular file)")
	jaccardCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
}

// sumLengths re-reads file independently of the sweep's own Source to
// total its merged interval lengths, sharing in so the same chromosome
// set is recognized (jaccard doesn't otherwise need these ids, only the
// sum). Merged so a self-overlapping B doesn't inflate bLen.
func sumLengths(file string, opt *config.Options, in *bed.Interner) (int64, error) {
	src, closeFn, err := openSource(file, opt, in)
	if err != nil {
		return 0, err
	}
	defer closeFn()
	merged := ops.NewMergedSource(src)

	var total int64
	for {
		r, err := merged.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		total += r.Len()
	}
}
