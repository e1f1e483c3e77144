package main

import (
	"bytes"
	"debug/macho"
	"testing"
)

func TestMachOObject(t *testing.T) {
	object := compileSource(t, "let x = 2 + 3; x;", Platform{Arch: ArchARM64, OS: OSDarwin})

	file, err := macho.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/macho rejected the object: %v", err)
	}
	defer file.Close()

	if file.Type != macho.TypeObj {
		t.Errorf("Expected MH_OBJECT, got %v", file.Type)
	}
	if file.Cpu != macho.CpuArm64 {
		t.Errorf("Expected arm64 cputype, got %v", file.Cpu)
	}
}

func TestMachOTextSection(t *testing.T) {
	fn := NewFunction("main")
	fn.Return(fn.Iconst(42))
	code, err := arm64Backend{}.EmitFunction(fn)
	if err != nil {
		t.Fatalf("EmitFunction failed: %v", err)
	}

	object, err := WriteMachOObject(ArchARM64, code)
	if err != nil {
		t.Fatalf("WriteMachOObject failed: %v", err)
	}

	file, err := macho.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/macho rejected the object: %v", err)
	}
	defer file.Close()

	text := file.Section("__text")
	if text == nil {
		t.Fatal("Object has no __text section")
	}
	if text.Seg != "__TEXT" {
		t.Errorf("Expected segment __TEXT, got %q", text.Seg)
	}

	data, err := text.Data()
	if err != nil {
		t.Fatalf("Reading __text failed: %v", err)
	}
	if !bytes.Equal(data, code) {
		t.Error("__text contents do not match the emitted machine code")
	}
}

func TestMachOMainSymbol(t *testing.T) {
	object := compileSource(t, "1;", Platform{Arch: ArchX86_64, OS: OSDarwin})

	file, err := macho.NewFile(bytes.NewReader(object))
	if err != nil {
		t.Fatalf("debug/macho rejected the object: %v", err)
	}
	defer file.Close()

	if file.Cpu != macho.CpuAmd64 {
		t.Errorf("Expected amd64 cputype, got %v", file.Cpu)
	}
	if file.Symtab == nil {
		t.Fatal("Object has no symbol table")
	}
	if len(file.Symtab.Syms) != 1 {
		t.Fatalf("Expected exactly one symbol, got %d", len(file.Symtab.Syms))
	}

	sym := file.Symtab.Syms[0]
	if sym.Name != "_main" {
		t.Errorf("Expected symbol '_main', got %q", sym.Name)
	}
	// N_SECT | N_EXT, defined in section 1
	if sym.Type != 0x0F {
		t.Errorf("Expected symbol type 0x0f, got 0x%02x", sym.Type)
	}
	if sym.Sect != 1 {
		t.Errorf("Expected symbol in section 1, got %d", sym.Sect)
	}
	if sym.Value != 0 {
		t.Errorf("Expected the symbol at the start of __text, got %d", sym.Value)
	}
}
