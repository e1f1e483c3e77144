//go:build !unix

// run_other.go - fallback for platforms without execve
package main

import (
	"os"
	"os/exec"
)

func runExecutable(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
