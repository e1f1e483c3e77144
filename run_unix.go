//go:build unix

// run_unix.go - hand off to the freshly built executable
package main

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// runExecutable replaces the current process with the built executable, so
// `wolf run` behaves like running the binary directly (same exit status,
// signals and file descriptors).
func runExecutable(path string, args []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	argv := append([]string{abs}, args...)
	return unix.Exec(abs, argv, os.Environ())
}
