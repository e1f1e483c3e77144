// driver.go - compilation orchestration: source file → object file → executable
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
)

// LinkFunc turns an object file into an executable. The driver takes it as
// an injected collaborator so tests can substitute a fake linker.
type LinkFunc func(objectPath, outputPath string) error

// Options configures a single CompileFile call.
type Options struct {
	OutputPath string   // executable path; empty means the source path with its extension stripped
	Platform   Platform // zero Arch means: WOLF_TARGET if set, otherwise the host
	Linker     LinkFunc // nil means the system C toolchain
}

// LinkWithSystemToolchain invokes the host C compiler front end as the
// linker: cc <object> -o <executable>. WOLF_CC or CC overrides the command.
// The call blocks until the subprocess exits.
func LinkWithSystemToolchain(objectPath, outputPath string) error {
	linker := env.Str("WOLF_CC", env.Str("CC", "cc"))
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "link: %s %s -o %s\n", linker, objectPath, outputPath)
	}

	output, err := exec.Command(linker, objectPath, "-o", outputPath).CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("%s: %v: %s", linker, err, strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("%s: %v", linker, err)
	}
	return nil
}

// replaceExtension swaps the path's extension for the given one; an empty
// replacement strips the extension.
func replaceExtension(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

// CompileFile compiles one source file into an executable and returns the
// executable's path. The intermediate object file at <source>.o is left on
// disk. Each step depends on the previous one; the first failure is wrapped
// in a DriverError naming the stage and returned immediately.
func CompileFile(sourcePath string, options Options) (string, error) {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", &DriverError{Stage: StageRead, Err: err}
	}

	program, err := ParseSource(string(source))
	if err != nil {
		return "", &DriverError{Stage: StageParse, Err: err}
	}

	platform := options.Platform
	if platform.Arch == ArchUnknown {
		platform, err = ResolvePlatform()
		if err != nil {
			return "", &DriverError{Stage: StageCodegen, Err: err}
		}
	}

	object, err := CompileProgramToObject(program, platform)
	if err != nil {
		return "", &DriverError{Stage: StageCodegen, Err: err}
	}

	objectPath := replaceExtension(sourcePath, ".o")
	if err := os.WriteFile(objectPath, object, 0o644); err != nil {
		return "", &DriverError{Stage: StageWrite, Err: err}
	}

	executablePath := options.OutputPath
	if executablePath == "" {
		executablePath = replaceExtension(sourcePath, "")
	}

	link := options.Linker
	if link == nil {
		link = LinkWithSystemToolchain
	}
	if err := link(objectPath, executablePath); err != nil {
		return "", &DriverError{Stage: StageLink, Err: err}
	}

	return executablePath, nil
}
