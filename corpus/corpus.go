// Package corpus builds and unpacks bundled testcases for the
// linepeek harness. A bundled testcase carries one byte blob per
// target file argument, so a single corpus entry drives a whole
// invocation of the target program.
package corpus

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/vmihailenco/msgpack/v5"
)

// PartExtensions names the parts of a testcase in argument order:
// the first blob becomes the file handed to the target as its first
// path, the second its second. The names are kept from the corpus
// format the harness ecosystem already uses.
var PartExtensions = [2]string{".in", ".sched"}

// DefaultRandomCount is how many fully random testcases Bundle
// produces when the raw directory has nothing usable in it.
const DefaultRandomCount = 10

const (
	maxRandomPartSize = 4096
	// roughly one newline per this many random bytes, so generated
	// parts have line structure for the target to walk
	newlineBias = 8
)

// Input is one bundled testcase.
type Input struct {
	Parts [][]byte `msgpack:"parts"`
}

// Bundle pairs every regular file in rawDir with a freshly generated
// second part and writes the bundled testcases into outDir,
// returning the paths it created. With no usable raw files it falls
// back to DefaultRandomCount fully random testcases.
func Bundle(rawDir, outDir string) ([]string, error) {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, fmt.Errorf("unable to read raw input directory: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create bundle directory: %w", err)
	}

	var inputs []Input
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		bits, err := os.ReadFile(filepath.Join(rawDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("unable to read raw input '%v': %w", e.Name(), err)
		}

		inputs = append(inputs, Input{Parts: [][]byte{bits, randomPart()}})
	}

	if len(inputs) == 0 {
		for i := 0; i < DefaultRandomCount; i++ {
			inputs = append(inputs, Generate(len(PartExtensions)))
		}
	}

	created := make([]string, 0, len(inputs))
	for _, in := range inputs {
		path := filepath.Join(outDir, xid.New().String())
		if err := in.WriteFile(path); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	return created, nil
}

// WriteFile encodes the testcase and writes it atomically, a rename
// over a temp file in the same directory, so a harness scanning the
// corpus never reads a half-written entry.
func (in Input) WriteFile(path string) error {
	bits, err := msgpack.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable to encode testcase: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bundle-*")
	if err != nil {
		return fmt.Errorf("unable to create temp file for testcase: %w", err)
	}

	if _, err := tmp.Write(bits); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to write testcase: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to finish writing testcase: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to move testcase into place: %w", err)
	}

	return nil
}

// ReadFile decodes a bundled testcase from disk.
func ReadFile(path string) (Input, error) {
	var in Input

	bits, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("unable to read testcase: %w", err)
	}

	if err := msgpack.Unmarshal(bits, &in); err != nil {
		return in, NewErrNotBundled(path, err)
	}

	if len(in.Parts) == 0 {
		return in, NewErrNotBundled(path, fmt.Errorf("testcase has no parts"))
	}

	return in, nil
}

// Split writes each part of the bundled testcase at path into
// destDir, named after the testcase with the part's extension.
func Split(path, destDir string) ([]string, error) {
	in, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(in.Parts) > len(PartExtensions) {
		return nil, fmt.Errorf(
			"testcase has %v parts, can only split into %v files",
			len(in.Parts), len(PartExtensions),
		)
	}

	stem := filepath.Base(path)
	written := make([]string, 0, len(in.Parts))
	for i, part := range in.Parts {
		dest := filepath.Join(destDir, stem+PartExtensions[i])
		if err := os.WriteFile(dest, part, 0644); err != nil {
			return nil, fmt.Errorf("unable to write part '%v': %w", dest, err)
		}
		written = append(written, dest)
	}

	return written, nil
}

// Generate builds a testcase with the given number of random parts.
func Generate(parts int) Input {
	in := Input{Parts: make([][]byte, parts)}
	for i := range in.Parts {
		in.Parts[i] = randomPart()
	}
	return in
}

func randomPart() []byte {
	bits := make([]byte, rand.Intn(maxRandomPartSize)+1)
	for i := range bits {
		if rand.Intn(newlineBias) == 0 {
			bits[i] = '\n'
			continue
		}
		bits[i] = byte(rand.Intn(256))
	}
	return bits
}
