package main

import (
	"bytes"
	"debug/elf"
	"testing"
)

// The emitted object must be a well-formed relocatable ELF file that the
// standard library's ELF reader accepts.
func TestELFObjectIsRelocatable(t *testing.T) {
	object := compileSource(t, "let x = 2 + 3; x;", Platform{Arch: ArchX86_64, OS: OSLinux})

	file, err := elf.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/elf rejected the object: %v", err)
	}
	defer file.Close()

	if file.Type != elf.ET_REL {
		t.Errorf("Expected ET_REL, got %v", file.Type)
	}
	if file.Machine != elf.EM_X86_64 {
		t.Errorf("Expected EM_X86_64, got %v", file.Machine)
	}
	if file.Class != elf.ELFCLASS64 {
		t.Errorf("Expected ELFCLASS64, got %v", file.Class)
	}
	if file.ByteOrder.String() != "LittleEndian" {
		t.Errorf("Expected little endian, got %v", file.ByteOrder)
	}
}

func TestELFTextSection(t *testing.T) {
	program, err := ParseSource("40 + 2;")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	fn := NewFunction("main")
	ctx := &lowerContext{fn: fn, variables: make(map[string]Slot)}
	last, err := ctx.lowerStatement(program.Statements[0])
	if err != nil {
		t.Fatalf("lowerStatement failed: %v", err)
	}
	fn.Return(last)
	code, err := amd64Backend{}.EmitFunction(fn)
	if err != nil {
		t.Fatalf("EmitFunction failed: %v", err)
	}

	object := WriteELFObject(GetELFMachineType(ArchX86_64), code)
	file, err := elf.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/elf rejected the object: %v", err)
	}
	defer file.Close()

	text := file.Section(".text")
	if text == nil {
		t.Fatal("Object has no .text section")
	}
	if text.Flags != elf.SHF_ALLOC|elf.SHF_EXECINSTR {
		t.Errorf("Unexpected .text flags: %v", text.Flags)
	}

	data, err := text.Data()
	if err != nil {
		t.Fatalf("Reading .text failed: %v", err)
	}
	if !bytes.Equal(data, code) {
		t.Errorf(".text contents do not match the emitted machine code")
	}
}

func TestELFMainSymbol(t *testing.T) {
	object := compileSource(t, "1;", Platform{Arch: ArchX86_64, OS: OSLinux})

	file, err := elf.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/elf rejected the object: %v", err)
	}
	defer file.Close()

	symbols, err := file.Symbols()
	if err != nil {
		t.Fatalf("Reading symbols failed: %v", err)
	}
	if len(symbols) != 1 {
		t.Fatalf("Expected exactly one symbol, got %d", len(symbols))
	}

	main := symbols[0]
	if main.Name != "main" {
		t.Errorf("Expected symbol name 'main', got %q", main.Name)
	}
	if elf.ST_BIND(main.Info) != elf.STB_GLOBAL {
		t.Errorf("Expected a global symbol, got binding %v", elf.ST_BIND(main.Info))
	}
	if elf.ST_TYPE(main.Info) != elf.STT_FUNC {
		t.Errorf("Expected a function symbol, got type %v", elf.ST_TYPE(main.Info))
	}
	if main.Value != 0 {
		t.Errorf("Expected the symbol at the start of .text, got value %d", main.Value)
	}
	if main.Size == 0 {
		t.Error("Expected a nonzero symbol size")
	}
	if main.Section != elf.SectionIndex(1) {
		t.Errorf("Expected the symbol in section 1 (.text), got %v", main.Section)
	}
}

func TestELFArm64Machine(t *testing.T) {
	object := compileSource(t, "1;", Platform{Arch: ArchARM64, OS: OSLinux})

	file, err := elf.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/elf rejected the object: %v", err)
	}
	defer file.Close()

	if file.Machine != elf.EM_AARCH64 {
		t.Errorf("Expected EM_AARCH64, got %v", file.Machine)
	}
}

func TestELFFreeBSDUsesELF(t *testing.T) {
	object := compileSource(t, "1;", Platform{Arch: ArchX86_64, OS: OSFreeBSD})
	if _, err := elf.NewFile(bytes.NewReader(object)); err != nil {
		t.Fatalf("FreeBSD object is not valid ELF: %v", err)
	}
}
