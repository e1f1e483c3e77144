// macho.go - Mach-O object writer for darwin targets
//
// Emits an MH_OBJECT file with one __TEXT,__text section and a symbol
// table exporting "_main" (the darwin C symbol prefix). A build-version
// load command marks the object as macOS so the system linker does not
// have to guess the platform.
package main

const (
	machoMagic64     = 0xFEEDFACF
	machoObjectFile  = 1    // MH_OBJECT
	lcSegment64      = 0x19 // LC_SEGMENT_64
	lcSymtab         = 0x02 // LC_SYMTAB
	lcBuildVersion   = 0x32 // LC_BUILD_VERSION
	machoHeaderSize  = 32
	segmentCmdSize   = 72 + 80 // segment command + one section_64
	buildVersionSize = 24
	symtabCmdSize    = 24
	nlistSize        = 16

	// S_ATTR_PURE_INSTRUCTIONS | S_ATTR_SOME_INSTRUCTIONS
	textSectionFlags = 0x80000400
)

const machoStrtab = "\x00_main\x00\x00" // padded to 8 bytes

func machoCPUType(arch Arch) (cputype, cpusubtype uint32, ok bool) {
	switch arch {
	case ArchX86_64:
		return 0x01000007, 0x3, true
	case ArchARM64:
		return 0x0100000C, 0x0, true
	default:
		return 0, 0, false
	}
}

// WriteMachOObject wraps machine code in a Mach-O object file exporting
// the global function symbol "_main".
func WriteMachOObject(arch Arch, code []byte) ([]byte, error) {
	cputype, cpusubtype, ok := machoCPUType(arch)
	if !ok {
		return nil, codegenErrorf("no Mach-O support for architecture: %s", arch)
	}

	sizeofcmds := segmentCmdSize + buildVersionSize + symtabCmdSize
	codeOffset := machoHeaderSize + sizeofcmds
	symtabOffset := alignUp(codeOffset+len(code), 8)
	strtabOffset := symtabOffset + nlistSize

	// Section alignment as a power of two: 16 bytes on x86_64,
	// 4 bytes (instruction size) on arm64.
	sectionAlign := uint32(4)
	if arch == ArchARM64 {
		sectionAlign = 2
	}

	w := NewBufferWrapper()

	// mach_header_64
	w.Write4u(machoMagic64)
	w.Write4u(cputype)
	w.Write4u(cpusubtype)
	w.Write4u(machoObjectFile)
	w.Write4u(3) // number of load commands
	w.Write4u(uint32(sizeofcmds))
	w.Write4u(0) // flags
	w.Write4u(0) // reserved

	// LC_SEGMENT_64 with one __text section
	w.Write4u(lcSegment64)
	w.Write4u(segmentCmdSize)
	w.WriteN(0, 16) // segment name: unnamed in object files
	w.Write8u(0)    // vmaddr
	w.Write8u(uint64(len(code)))
	w.Write8u(uint64(codeOffset))
	w.Write8u(uint64(len(code)))
	w.Write4u(7) // maxprot rwx
	w.Write4u(7) // initprot rwx
	w.Write4u(1) // one section
	w.Write4u(0) // flags

	writeMachoName(w, "__text")
	writeMachoName(w, "__TEXT")
	w.Write8u(0) // section address
	w.Write8u(uint64(len(code)))
	w.Write4u(uint32(codeOffset))
	w.Write4u(sectionAlign)
	w.Write4u(0) // relocation table offset (no relocations)
	w.Write4u(0) // relocation count
	w.Write4u(textSectionFlags)
	w.Write4u(0) // reserved1
	w.Write4u(0) // reserved2
	w.Write4u(0) // reserved3

	// LC_BUILD_VERSION: macOS 11.0
	w.Write4u(lcBuildVersion)
	w.Write4u(buildVersionSize)
	w.Write4u(1) // PLATFORM_MACOS
	w.Write4u(0x000B0000)
	w.Write4u(0x000B0000)
	w.Write4u(0) // no tool entries

	// LC_SYMTAB
	w.Write4u(lcSymtab)
	w.Write4u(symtabCmdSize)
	w.Write4u(uint32(symtabOffset))
	w.Write4u(1) // one symbol
	w.Write4u(uint32(strtabOffset))
	w.Write4u(uint32(len(machoStrtab)))

	// __text contents
	w.WriteBytes(code)
	w.Align(8)

	// nlist_64 for _main: external, defined in section 1
	w.Write4u(1)  // string table offset of "_main"
	w.Write(0x0F) // N_SECT | N_EXT
	w.Write(1)    // section number
	w.Write2u(0)  // description
	w.Write8u(0)  // value: start of __text

	w.WriteString(machoStrtab)

	return w.Bytes(), nil
}

// writeMachoName writes a 16-byte zero-padded segment or section name.
func writeMachoName(w *BufferWrapper, name string) {
	w.WriteString(name)
	w.WriteN(0, 16-len(name))
}
