//go:build mage
// +build mage

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// All does what it says on the tin: lints, tests, and builds the
// target and harness binaries
func All() error {
	mg.SerialDeps(Lint, Test, Build)
	return nil
}

// Build generates both the linepeek target and the harness binaries
func Build() error {
	mg.SerialDeps(BuildTarget, BuildHarness)
	return nil
}

// BuildTarget builds the linepeek target binary
func BuildTarget() error {
	mg.SerialDeps(ensureBuildDir)

	fmt.Print("[BUILD][TARGET] building linepeek...")
	if err := sh.Run("go", "build", "-o", buildDir+"/linepeek", "./cmd/linepeek"); err != nil {
		fmt.Println(" ERROR")
		return err
	}
	fmt.Println(" SUCCESS")
	return nil
}

// BuildHarness builds the harness CLI binary
func BuildHarness() error {
	mg.SerialDeps(ensureBuildDir)

	fmt.Print("[BUILD][HARNESS] building harness...")
	if err := sh.Run("go", "build", "-o", buildDir+"/harness", "./cmd/harness"); err != nil {
		fmt.Println(" ERROR")
		return err
	}
	fmt.Println(" SUCCESS")
	return nil
}

// Lint runs golangci-lint on the code
func Lint() error {
	stdOut := bytes.NewBuffer(nil)
	stdErr := bytes.NewBuffer(nil)

	fmt.Fprintf(os.Stdout, "[BUILD][LINT] linting the code...")
	_, err := sh.Exec(nil, stdOut, stdErr, "golangci-lint", "run", "-v", "./...")
	if err != nil {
		fmt.Fprintf(os.Stdout, " ERROR!\n")
		fmt.Fprintf(os.Stdout, stdOut.String())
		fmt.Fprintf(os.Stderr, stdErr.String())
		return err
	}
	fmt.Fprintf(os.Stdout, " SUCCESS!\n")
	return nil
}
