/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command unquantum extracts or lists standalone Quantum (.Q) archives. It
// is the thin CLI shell around packages archive/stream/lz/entropy/bitstream:
// every bit of decompression logic lives there, and this file only does
// argument parsing, filesystem output, and turning errors into exit codes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	quantum "github.com/cinematronics/unquantum"
	"github.com/cinematronics/unquantum/archive"
	"github.com/cinematronics/unquantum/stream"
)

// parseOnly reads just the header and file table, used by `list` which
// never needs to touch the compressed payload.
func parseOnly(buf []byte) (*archive.Parsed, error) {
	return archive.Parse(buf)
}

// Exit codes, one per spec.md section 7 error-taxonomy entry plus the usual
// CLI housekeeping ones, mirroring Kanzi.go's ERR_* / os.Exit convention.
const (
	exitOK                 = 0
	exitUsage              = 1
	exitOpenFile           = 2
	exitMalformedContainer = 3
	exitCorruptBitstream   = 4
	exitSizeMismatch       = 5
	exitWriteFile          = 6
	exitUnknown            = 127
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitUsage
	}

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "extract":
		return runExtract(rest)
	case "list":
		return runList(rest)
	case "-h", "--help", "help":
		printUsage()
		return exitOK
	default:
		// No subcommand named: treat every argument as an archive path and
		// default to extraction, so `unquantum foo.Q` keeps working.
		return runExtract(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: unquantum extract [-o dir] [-v] archive.Q [archive2.Q ...]")
	fmt.Fprintln(os.Stderr, "       unquantum list [--format text|yaml] [-v] archive.Q [archive2.Q ...]")
}

func newLogger(verbose bool) *log.Logger {
	logger := log.New(os.Stderr)

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}

func runExtract(args []string) int {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	outDir := fs.StringP("output", "o", ".", "directory to extract into")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	paths := fs.Args()

	if len(paths) == 0 {
		printUsage()
		return exitUsage
	}

	logger := newLogger(*verbose)

	for _, path := range paths {
		if code := extractOne(path, *outDir, logger); code != exitOK {
			return code
		}
	}

	return exitOK
}

func extractOne(path, outDir string, logger *log.Logger) int {
	buf, err := os.ReadFile(path)

	if err != nil {
		logger.Error("reading archive", "path", path, "err", err)
		return exitOpenFile
	}

	r := newReporter(logger)
	parsed, data, err := stream.DecompressArchive(buf, r)

	if err != nil {
		logger.Error("decompressing", "path", path, "err", err)
		return exitCodeFor(err)
	}

	if err := extractArchive(parsed, data, outDir); err != nil {
		logger.Error("extracting", "path", path, "err", err)
		return exitWriteFile
	}

	logger.Info("extracted", "path", path, "files", len(parsed.Entries), "dir", outDir)
	return exitOK
}

func runList(args []string) int {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	format := fs.String("format", "text", "output format: text or yaml")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	paths := fs.Args()

	if len(paths) == 0 {
		printUsage()
		return exitUsage
	}

	logger := newLogger(*verbose)

	for _, path := range paths {
		if code := listOne(path, *format, logger); code != exitOK {
			return code
		}
	}

	return exitOK
}

func listOne(path, format string, logger *log.Logger) int {
	buf, err := os.ReadFile(path)

	if err != nil {
		logger.Error("reading archive", "path", path, "err", err)
		return exitOpenFile
	}

	parsed, err := parseOnly(buf)

	if err != nil {
		logger.Error("parsing", "path", path, "err", err)
		return exitCodeFor(err)
	}

	if err := listEntries(path, parsed.Entries, format, os.Stdout); err != nil {
		logger.Error("listing", "path", path, "err", err)
		return exitWriteFile
	}

	return exitOK
}

func exitCodeFor(err error) int {
	var qerr *quantum.Error

	if errors.As(err, &qerr) {
		switch qerr.Kind {
		case quantum.KindMalformedContainer:
			return exitMalformedContainer
		case quantum.KindCorruptBitstream:
			return exitCorruptBitstream
		case quantum.KindSizeMismatch:
			return exitSizeMismatch
		}
	}

	return exitUnknown
}
