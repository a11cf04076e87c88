// Package preview implements the linepeek program: a bounded preview
// of the leading lines of a fixed number of files, with all output
// and all failure reporting going through a single writer. The
// program exists as a deterministic target for external fuzzing
// harnesses, so the output text here is byte-exact and must stay
// that way.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// MaxLines is the number of leading lines emitted per file.
	MaxLines = 5
	// MaxFiles is the number of path arguments consumed per invocation.
	MaxFiles = 2
)

// openFailed is printed whenever a file can't be opened. Every
// failure cause collapses into this one line on purpose; the target
// never distinguishes missing files from permission problems.
const openFailed = "Unable to open file"

// noArguments is printed when fewer than MaxFiles paths are supplied.
const noArguments = "No argument passed through command line."

var ordinals = [MaxFiles]string{"First", "Second"}

// Run previews up to MaxFiles of the given path arguments, writing
// everything to w. With fewer than MaxFiles arguments it prints a
// notice and touches no files at all; arguments past MaxFiles are
// ignored.
func Run(w io.Writer, args []string) {
	if len(args) < MaxFiles {
		fmt.Fprintln(w, noArguments)
		return
	}

	for i := 0; i < MaxFiles; i++ {
		fmt.Fprintf(w, "%s argument is: %s\n", ordinals[i], args[i])
		File(w, args[i])
	}
}

// File writes up to MaxLines lines of the file at path to w, each
// followed by a newline. A line is a maximal run of bytes up to and
// excluding a newline, or up to end-of-file when no terminator is
// present. An empty file produces no output at all, which is not the
// same thing as an open failure.
func File(w io.Writer, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(w, openFailed)
		return
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for n := 0; n < MaxLines; n++ {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		fmt.Fprintln(w, strings.TrimSuffix(line, "\n"))
		if err != nil {
			break
		}
	}
}
