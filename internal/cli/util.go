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
	"runtime"

	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"

	"github.com/shenwei356/bedtk/internal/config"
)

func getFlagString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	checkError(err)
	return v
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return v
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return v
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	v, err := cmd.Flags().GetFloat64(flag)
	checkError(err)
	return v
}

func getFlagInt64(cmd *cobra.Command, flag string) int64 {
	v, err := cmd.Flags().GetInt64(flag)
	checkError(err)
	return v
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	v := getFlagInt(cmd, flag)
	if v <= 0 {
		checkError(fmt.Errorf("value of flag --%s should be > 0", flag))
	}
	return v
}

func getFlagNonNegativeInt64(cmd *cobra.Command, flag string) int64 {
	v := getFlagInt64(cmd, flag)
	if v < 0 {
		checkError(fmt.Errorf("value of flag --%s should be >= 0", flag))
	}
	return v
}

// getFlagStringSlice reads a repeatable string flag (e.g. -i given more
// than once for multiinter's N input files).
func getFlagStringSlice(cmd *cobra.Command, flag string) []string {
	v, err := cmd.Flags().GetStringSlice(flag)
	checkError(err)
	return v
}

// checkError prints err and exits immediately, mirroring
// unikmer/cmd/util.go's checkError - bedtk's version additionally
// honors bederr's per-kind exit code when err carries one.
func checkError(err error) {
	if err == nil {
		return
	}
	exitWithError(err)
}

func checkFileExists(file string) {
	if file == "-" {
		return
	}
	ok, err := pathutil.Exists(file)
	checkError(errors.Wrapf(err, "checking file %s", file))
	if !ok {
		checkError(fmt.Errorf("file does not exist: %s", file))
	}
}

// getOptions builds config.Options from the persistent flags declared
// in root.go, layering BEDTK_* environment overrides on top of the
// flag defaults the way unikmer/cmd/util.go's getOptions builds its
// Options - grounded on that function, extended with bedtk's three env
// vars.
func getOptions(cmd *cobra.Command) *config.Options {
	threads := getFlagPositiveInt(cmd, "threads")
	if v, ok := config.EnvThreadsOverride(); ok {
		threads = v
	}

	bufSize := getFlagInt(cmd, "buffer-size")
	if bufSize <= 0 {
		bufSize = config.DefaultBufferSize
	}
	if v, ok := config.EnvBufferSizeOverride(); ok {
		bufSize = v
	}

	sortMem := getFlagInt64(cmd, "sort-memory")
	if sortMem <= 0 {
		sortMem = config.DefaultSortMemory
	}
	if v, ok := config.EnvSortMemoryOverride(); ok {
		sortMem = v
	}

	return &config.Options{
		NumCPUs:            threads,
		Verbose:            getFlagBool(cmd, "verbose"),
		BedtoolsCompatible: getFlagBool(cmd, "bedtools-compat"),
		AssumeSorted:       getFlagBool(cmd, "assume-sorted"),
		BufferSize:         bufSize,
		SortMemory:         sortMem,
	}
}

func defaultThreads() int {
	n := runtime.NumCPU()
	if n > 2 {
		return 2
	}
	return n
}

// exitWithError prints err and terminates with the bederr-mapped exit
// code when available, 1 otherwise - generalized from
// unikmer/cmd/root.go's Execute(), which always exits -1.
func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCodeFor(err))
}
