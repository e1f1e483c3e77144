package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCommand()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, versionString) {
		t.Errorf("Expected %q in output, got %q", versionString, stdout)
	}
}

func TestCLICompileFailureMessage(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "bad.wolf")
	if err := os.WriteFile(sourcePath, []byte("let x 5;"), 0o644); err != nil {
		t.Fatalf("Writing source failed: %v", err)
	}

	_, stderr, err := runCommand(t, "compile", sourcePath)
	if err == nil {
		t.Fatal("Expected compile to fail")
	}
	if !strings.HasPrefix(stderr, "Compilation failed: ") {
		t.Errorf("Expected 'Compilation failed: ' prefix, got %q", stderr)
	}
	if !strings.Contains(stderr, "1:7") {
		t.Errorf("Expected the error position in %q", stderr)
	}
}

func TestCLICompileRequiresArgument(t *testing.T) {
	_, _, err := runCommand(t, "compile")
	if err == nil {
		t.Fatal("Expected an error without a source path")
	}
}
