// elf.go - ELF64 relocatable object writer
//
// Emits a minimal ET_REL object: a .text section holding the function
// body, a symbol table exporting "main", and the two string tables. The
// code is straight-line and self-contained, so no relocations are needed
// and the object is position-independent as-is.
package main

const (
	elfHeaderSize     = 64 // ELF64 header size
	sectionHeaderSize = 64 // Section header entry size (ELF64)
	symbolEntrySize   = 24 // Elf64_Sym size

	// Section header string table layout (offsets into shstrtab below)
	shstrTextName     = 1
	shstrSymtabName   = 7
	shstrStrtabName   = 15
	shstrShstrtabName = 23
)

const elfShstrtab = "\x00.text\x00.symtab\x00.strtab\x00.shstrtab\x00"
const elfStrtab = "\x00main\x00"

func alignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// WriteELFObject wraps machine code in a relocatable ELF64 object file
// exporting the global function symbol "main".
func WriteELFObject(machine uint16, code []byte) []byte {
	textOffset := elfHeaderSize
	symtabOffset := alignUp(textOffset+len(code), 8)
	strtabOffset := symtabOffset + 2*symbolEntrySize
	shstrtabOffset := strtabOffset + len(elfStrtab)
	shoff := alignUp(shstrtabOffset+len(elfShstrtab), 8)

	w := NewBufferWrapper()

	// ELF header
	w.WriteBytes([]byte{0x7f, 'E', 'L', 'F'})
	w.Write(2)     // 64-bit
	w.Write(1)     // little endian
	w.Write(1)     // ELF version
	w.Write(0)     // System V ABI
	w.WriteN(0, 8) // ABI version + padding
	w.Write2u(1)   // object file type: relocatable
	w.Write2u(machine)
	w.Write4u(1) // ELF version
	w.Write8u(0) // entry point (none for relocatable)
	w.Write8u(0) // program header offset (none)
	w.Write8u(uint64(shoff))
	w.Write4u(0) // flags
	w.Write2u(elfHeaderSize)
	w.Write2u(0) // program header entry size
	w.Write2u(0) // program header count
	w.Write2u(sectionHeaderSize)
	w.Write2u(5) // section count
	w.Write2u(4) // section name string table index

	// .text
	w.WriteBytes(code)
	w.Align(8)

	// .symtab: null symbol, then "main" (global function in .text)
	w.WriteN(0, symbolEntrySize)
	w.Write4u(1)  // name offset in .strtab
	w.Write(0x12) // STB_GLOBAL | STT_FUNC
	w.Write(0)    // visibility
	w.Write2u(1)  // section index of .text
	w.Write8u(0)  // value: start of .text
	w.Write8u(uint64(len(code)))

	// .strtab and .shstrtab
	w.WriteString(elfStrtab)
	w.WriteString(elfShstrtab)
	w.Align(8)

	// Section headers: null, .text, .symtab, .strtab, .shstrtab
	w.WriteN(0, sectionHeaderSize)

	// .text: SHT_PROGBITS, SHF_ALLOC | SHF_EXECINSTR
	writeSectionHeader(w, shstrTextName, 1, 0x6, textOffset, len(code), 0, 0, 16, 0)
	// .symtab: SHT_SYMTAB, linked to .strtab, one local (null) symbol
	writeSectionHeader(w, shstrSymtabName, 2, 0, symtabOffset, 2*symbolEntrySize, 3, 1, 8, symbolEntrySize)
	// .strtab and .shstrtab: SHT_STRTAB
	writeSectionHeader(w, shstrStrtabName, 3, 0, strtabOffset, len(elfStrtab), 0, 0, 1, 0)
	writeSectionHeader(w, shstrShstrtabName, 3, 0, shstrtabOffset, len(elfShstrtab), 0, 0, 1, 0)

	return w.Bytes()
}

func writeSectionHeader(w *BufferWrapper, name int, sectionType uint32, flags uint64,
	offset, size int, link, info uint32, addralign, entsize int) {
	w.Write4u(uint32(name))
	w.Write4u(sectionType)
	w.Write8u(flags)
	w.Write8u(0) // virtual address
	w.Write8u(uint64(offset))
	w.Write8u(uint64(size))
	w.Write4u(link)
	w.Write4u(info)
	w.Write8u(uint64(addralign))
	w.Write8u(uint64(entsize))
}
