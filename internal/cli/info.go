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

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "print a per-chromosome summary table for a BED file",
	Long: `info reports, per chromosome in -i, the number of records and the
sum of their interval lengths; with -g it also reports the genome
length and the fraction covered. Output is an aligned text table,
or raw tab-separated rows with -T.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var gLen map[string]int64
		var order []string
		if g := getFlagString(cmd, "g"); g != "" {
			checkFileExists(g)
			gm, err := loadGenome(g)
			checkError(err)
			gLen = make(map[string]int64, len(gm.Names()))
			for _, n := range gm.Names() {
				l, _ := gm.Len(n)
				gLen[n] = l
			}
			order = gm.Names()
		}

		file := getFlagString(cmd, "i")
		checkFileExists(file)

		in := newInterner(nil)
		src, srcClose, err := openSource(file, opt, in)
		checkError(err)
		defer srcClose()

		counts := map[string]int64{}
		bases := map[string]int64{}
		var seen []string
		seenSet := map[string]bool{}

		for {
			r, err := src.Next()
			if err == io.EOF {
				break
			}
			checkError(err)
			name := string(r.Chrom)
			if !seenSet[name] {
				seenSet[name] = true
				seen = append(seen, name)
			}
			counts[name]++
			bases[name] += r.Len()
		}

		rows := order
		if rows == nil {
			rows = seen
		}

		out, outClose, err := openOutput(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outClose()

		tabular := getFlagBool(cmd, "T")
		if tabular {
			for _, name := range rows {
				if gLen != nil {
					fmt.Fprintf(out.Raw(), "%s\t%d\t%d\t%d\n", name, gLen[name], counts[name], bases[name])
				} else {
					fmt.Fprintf(out.Raw(), "%s\t%d\t%d\n", name, counts[name], bases[name])
				}
			}
			return
		}

		columns := []stable.Column{{Header: "chrom"}}
		if gLen != nil {
			columns = append(columns, stable.Column{Header: "length", Align: stable.AlignRight})
		}
		columns = append(columns,
			stable.Column{Header: "records", Align: stable.AlignRight},
			stable.Column{Header: "bases", Align: stable.AlignRight},
		)
		if gLen != nil {
			columns = append(columns, stable.Column{Header: "fraction", Align: stable.AlignRight})
		}

		tbl := stable.New()
		tbl.HeaderWithFormat(columns)
		for _, name := range rows {
			row := make([]interface{}, 0, len(columns))
			row = append(row, name)
			if gLen != nil {
				row = append(row, humanize.Comma(gLen[name]))
			}
			row = append(row, humanize.Comma(counts[name]))
			row = append(row, humanize.Comma(bases[name]))
			if gLen != nil && gLen[name] > 0 {
				row = append(row, fmt.Sprintf("%.4f", float64(bases[name])/float64(gLen[name])))
			} else if gLen != nil {
				row = append(row, "0.0000")
			}
			tbl.AddRow(row)
		}
		out.Raw().Write(tbl.Render(&stable.TableStyle{
			Name:      "plain",
			HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			Padding:   "",
		}))
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringP("i", "i", "-", "input file (sorted BED)")
	infoCmd.Flags().StringP("g", "g", "", "genome file: two-column name\\tlength, adds length/fraction columns")
	infoCmd.Flags().StringP("out-file", "o", "-", "output file, \"-\" for stdout")
	infoCmd.Flags().BoolP("T", "T", false, "output raw tab-separated rows instead of an aligned table")
}
