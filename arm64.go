// arm64.go - aarch64 machine code emission for IR functions
//
// Same spill-everything strategy as the x86_64 backend, working through
// x0/x1. Frame locations are sp-relative with scaled unsigned offsets, so
// the usable frame is limited by the 12-bit immediate of sub sp, sp, #imm.
package main

type arm64Backend struct{}

const arm64MaxFrame = 4095 // 12-bit unsigned immediate, in bytes

func (arm64Backend) emit32(w *BufferWrapper, instr uint32) {
	w.Write4u(instr)
}

// ldrFromFrame emits: ldr xreg, [sp, #off]
func (b arm64Backend) ldrFromFrame(w *BufferWrapper, reg uint32, off int) {
	b.emit32(w, 0xF9400000|uint32(off/8)<<10|31<<5|reg)
}

// strToFrame emits: str xreg, [sp, #off]
func (b arm64Backend) strToFrame(w *BufferWrapper, reg uint32, off int) {
	b.emit32(w, 0xF9000000|uint32(off/8)<<10|31<<5|reg)
}

// movImmToX0 materializes a 64-bit constant in x0 with movz/movk.
func (b arm64Backend) movImmToX0(w *BufferWrapper, imm int64) {
	v := uint64(imm)
	// movz x0, #chunk0
	b.emit32(w, 0xD2800000|uint32(v&0xFFFF)<<5)
	for hw := uint32(1); hw < 4; hw++ {
		chunk := uint32((v >> (16 * hw)) & 0xFFFF)
		if chunk != 0 {
			// movk x0, #chunk, lsl #(16*hw)
			b.emit32(w, 0xF2800000|hw<<21|chunk<<5)
		}
	}
}

func (b arm64Backend) EmitFunction(fn *Function) ([]byte, error) {
	if !fn.Sealed() {
		return nil, codegenErrorf("function %s has no return", fn.Name)
	}

	frame := fn.FrameSize()
	if frame > arm64MaxFrame {
		return nil, codegenErrorf("function %s needs a %d byte frame, aarch64 backend supports at most %d",
			fn.Name, frame, arm64MaxFrame)
	}

	w := NewBufferWrapper()

	// Prologue
	b.emit32(w, 0xA9BF7BFD)                   // stp x29, x30, [sp, #-16]!
	b.emit32(w, 0x910003FD)                   // mov x29, sp
	b.emit32(w, 0xD10003FF|uint32(frame)<<10) // sub sp, sp, #frame

	for _, instr := range fn.Instrs {
		switch instr.Op {
		case IRIconst:
			b.movImmToX0(w, instr.Imm)
			b.strToFrame(w, 0, fn.valueOffset(instr.Result))

		case IRSlotLoad:
			b.ldrFromFrame(w, 0, fn.slotOffset(instr.Slot))
			b.strToFrame(w, 0, fn.valueOffset(instr.Result))

		case IRSlotStore:
			b.ldrFromFrame(w, 0, fn.valueOffset(instr.X))
			b.strToFrame(w, 0, fn.slotOffset(instr.Slot))

		case IRAdd, IRSub, IRMul, IRSDiv:
			b.ldrFromFrame(w, 0, fn.valueOffset(instr.X))
			b.ldrFromFrame(w, 1, fn.valueOffset(instr.Y))
			switch instr.Op {
			case IRAdd:
				b.emit32(w, 0x8B010000) // add x0, x0, x1
			case IRSub:
				b.emit32(w, 0xCB010000) // sub x0, x0, x1
			case IRMul:
				b.emit32(w, 0x9B017C00) // mul x0, x0, x1
			case IRSDiv:
				b.emit32(w, 0x9AC10C00) // sdiv x0, x0, x1
			}
			b.strToFrame(w, 0, fn.valueOffset(instr.Result))

		case IRReturn:
			b.ldrFromFrame(w, 0, fn.valueOffset(instr.X))
			b.emit32(w, 0x910003FF|uint32(frame)<<10) // add sp, sp, #frame
			b.emit32(w, 0xA8C17BFD)                   // ldp x29, x30, [sp], #16
			b.emit32(w, 0xD65F03C0)                   // ret

		default:
			return nil, codegenErrorf("unsupported IR instruction %d on aarch64", instr.Op)
		}
	}

	return w.Bytes(), nil
}
