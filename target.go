// target.go - target platform model and host detection
package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/xyproto/env/v2"
)

// Architecture type
type Arch int

const (
	ArchUnknown Arch = iota
	ArchX86_64
	ArchARM64
)

func (a Arch) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "aarch64"
	default:
		return "unknown"
	}
}

// ParseArch parses an architecture string (like GOARCH values)
func ParseArch(s string) (Arch, error) {
	switch strings.ToLower(s) {
	case "x86_64", "amd64", "x86-64":
		return ArchX86_64, nil
	case "aarch64", "arm64":
		return ArchARM64, nil
	default:
		return 0, fmt.Errorf("unsupported architecture: %s (supported: amd64, arm64)", s)
	}
}

// OS type
type OS int

const (
	OSLinux OS = iota
	OSDarwin
	OSFreeBSD
	OSWindows
)

func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSDarwin:
		return "darwin"
	case OSFreeBSD:
		return "freebsd"
	case OSWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// ParseOS parses an OS string (like GOOS values)
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(s) {
	case "linux":
		return OSLinux, nil
	case "darwin", "macos":
		return OSDarwin, nil
	case "freebsd":
		return OSFreeBSD, nil
	case "windows", "win":
		return OSWindows, nil
	default:
		return 0, fmt.Errorf("unsupported OS: %s (supported: linux, darwin, freebsd, windows)", s)
	}
}

// Platform represents a compilation target (architecture + OS).
// The architecture decides registers and instruction encodings, the OS
// decides the object file format.
type Platform struct {
	Arch Arch
	OS   OS
}

// FullString returns the full platform string like "arm64-darwin"
func (p Platform) FullString() string {
	archStr := p.Arch.String()
	if p.Arch == ArchARM64 {
		archStr = "arm64"
	} else if p.Arch == ArchX86_64 {
		archStr = "amd64"
	}
	return archStr + "-" + p.OS.String()
}

// IsELF returns true if this platform uses the ELF object format
func (p Platform) IsELF() bool {
	return p.OS == OSLinux || p.OS == OSFreeBSD
}

// IsMachO returns true if this platform uses the Mach-O object format
func (p Platform) IsMachO() bool {
	return p.OS == OSDarwin
}

// GetDefaultPlatform returns the platform of the current host
func GetDefaultPlatform() Platform {
	var arch Arch
	switch runtime.GOARCH {
	case "amd64":
		arch = ArchX86_64
	case "arm64":
		arch = ArchARM64
	default:
		arch = ArchUnknown
	}

	var os OS
	switch runtime.GOOS {
	case "linux":
		os = OSLinux
	case "darwin":
		os = OSDarwin
	case "freebsd":
		os = OSFreeBSD
	case "windows":
		os = OSWindows
	default:
		os = OSLinux
	}

	return Platform{Arch: arch, OS: os}
}

// ParsePlatform parses strings like "amd64-linux" or "arm64" (host OS).
func ParsePlatform(s string) (Platform, error) {
	parts := strings.SplitN(s, "-", 2)

	arch, err := ParseArch(parts[0])
	if err != nil {
		return Platform{}, err
	}

	os := GetDefaultPlatform().OS
	if len(parts) == 2 {
		os, err = ParseOS(parts[1])
		if err != nil {
			return Platform{}, err
		}
	}

	return Platform{Arch: arch, OS: os}, nil
}

// ResolvePlatform returns the platform to compile for: the WOLF_TARGET
// environment variable if set, otherwise the host platform.
func ResolvePlatform() (Platform, error) {
	if target := env.Str("WOLF_TARGET"); target != "" {
		return ParsePlatform(target)
	}
	return GetDefaultPlatform(), nil
}

// GetELFMachineType returns the ELF machine type constant for a given architecture
func GetELFMachineType(arch Arch) uint16 {
	switch arch {
	case ArchX86_64:
		return 0x3e // AMD x86-64
	case ArchARM64:
		return 0xb7 // ARM64
	default:
		return 0
	}
}
