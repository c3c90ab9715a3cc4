//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles both executables into ./bin
func Build() error {
	mg.Deps(BuildFribTrace)
	mg.Deps(BuildParamScan)
	fmt.Println("Compilation finished")
	return nil
}

func BuildFribTrace() error {
	fmt.Println("Building fribtrace executable...")
	return goCommand("build", "-o", "./bin/fribtrace", "./fribtrace")
}

func BuildParamScan() error {
	fmt.Println("Building paramScan executable...")
	return goCommand("build", "-o", "./bin/paramScan", "./paramScan")
}

// Test runs the unit tests of the analysis package
func Test() error {
	fmt.Println("Running tests...")
	return goCommand("test", "./pkg/...")
}

// HDF5 is a C library, cgo flags are taken from the environment
func goCommand(args ...string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
