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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/bed"
	"github.com/shenwei356/bedtk/bed/ops"
)

var multiinterCmd = &cobra.Command{
	Use:   "multiinter",
	Short: "report, across N sorted BED streams, which files cover each run",
	Long: `multiinter fans out across the N files given with repeated -i flags
(spec §4.6): for every run of constant membership across all inputs
it reports which files are active (count, csv names, then one 0/1
presence column per file), sharing a single Interner so chromosome ids
compare across files. --cluster restricts output to runs where every
input is active.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		files := getFlagStringSlice(cmd, "i")
		if len(files) < 2 {
			checkError(fmt.Errorf("multiinter requires at least 2 -i files, got %d", len(files)))
		}
		names := getFlagStringSlice(cmd, "names")
		if len(names) == 0 {
			names = make([]string, len(files))
			for i, f := range files {
				names[i] = strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
			}
		}
		if len(names) != len(files) {
			checkError(fmt.Errorf("--names must list exactly %d names, got %d", len(files), len(names)))
		}

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		in := newInterner(nil)
		sources := make([]bed.Source, len(files))
		for i, f := range files {
			checkFileExists(f)
			src, srcClose, err := openSource(f, opt, in)
			checkError(err)
			defer srcClose()
			sources[i] = src
		}

		op := ops.NewMultiInter(names, sources, getFlagBool(cmd, "cluster"), out)
		checkError(op.Run())
	},
}

func init() {
	RootCmd.AddCommand(multiinterCmd)

	multiinterCmd.Flags().StringSliceP("i", "i", nil, "input file (sorted BED), repeatable for each of the N streams")
	multiinterCmd.Flags().StringSlice("names", nil, "label for each -i file, in order (default: file basenames)")
	multiinterCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	multiinterCmd.Flags().Bool("cluster", false, "emit only runs where every input is active")
}
