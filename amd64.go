// amd64.go - x86_64 machine code emission for IR functions
//
// The backend spills every IR value to its own frame location and works
// through rax/rcx, so no register allocation is needed for straight-line
// code. Frame locations are addressed rbp-relative with 32-bit
// displacements.
package main

type amd64Backend struct{}

const (
	regRAX = 0
	regRCX = 1
)

// frameDisp converts a frame-layout offset into an rbp-relative displacement.
func frameDisp(off int) uint32 {
	return uint32(int32(-(off + 8)))
}

// movFrameToReg emits: mov reg, [rbp+disp]
func (amd64Backend) movFrameToReg(w *BufferWrapper, reg byte, off int) {
	w.Write(0x48) // REX.W
	w.Write(0x8B)
	w.Write(0x85 | reg<<3) // ModRM: [rbp]+disp32
	w.Write4u(frameDisp(off))
}

// movRegToFrame emits: mov [rbp+disp], reg
func (amd64Backend) movRegToFrame(w *BufferWrapper, reg byte, off int) {
	w.Write(0x48)
	w.Write(0x89)
	w.Write(0x85 | reg<<3)
	w.Write4u(frameDisp(off))
}

// movImmToRAX emits: movabs rax, imm64
func (amd64Backend) movImmToRAX(w *BufferWrapper, imm int64) {
	w.Write(0x48)
	w.Write(0xB8)
	w.Write8u(uint64(imm))
}

func (b amd64Backend) EmitFunction(fn *Function) ([]byte, error) {
	if !fn.Sealed() {
		return nil, codegenErrorf("function %s has no return", fn.Name)
	}

	w := NewBufferWrapper()
	frame := fn.FrameSize()

	// Prologue
	w.Write(0x55)                          // push rbp
	w.WriteBytes([]byte{0x48, 0x89, 0xE5}) // mov rbp, rsp
	w.WriteBytes([]byte{0x48, 0x81, 0xEC}) // sub rsp, imm32
	w.Write4u(uint32(frame))

	for _, instr := range fn.Instrs {
		switch instr.Op {
		case IRIconst:
			b.movImmToRAX(w, instr.Imm)
			b.movRegToFrame(w, regRAX, fn.valueOffset(instr.Result))

		case IRSlotLoad:
			b.movFrameToReg(w, regRAX, fn.slotOffset(instr.Slot))
			b.movRegToFrame(w, regRAX, fn.valueOffset(instr.Result))

		case IRSlotStore:
			b.movFrameToReg(w, regRAX, fn.valueOffset(instr.X))
			b.movRegToFrame(w, regRAX, fn.slotOffset(instr.Slot))

		case IRAdd, IRSub, IRMul, IRSDiv:
			b.movFrameToReg(w, regRAX, fn.valueOffset(instr.X))
			b.movFrameToReg(w, regRCX, fn.valueOffset(instr.Y))
			switch instr.Op {
			case IRAdd:
				w.WriteBytes([]byte{0x48, 0x01, 0xC8}) // add rax, rcx
			case IRSub:
				w.WriteBytes([]byte{0x48, 0x29, 0xC8}) // sub rax, rcx
			case IRMul:
				w.WriteBytes([]byte{0x48, 0x0F, 0xAF, 0xC1}) // imul rax, rcx
			case IRSDiv:
				w.WriteBytes([]byte{0x48, 0x99})       // cqo
				w.WriteBytes([]byte{0x48, 0xF7, 0xF9}) // idiv rcx
			}
			b.movRegToFrame(w, regRAX, fn.valueOffset(instr.Result))

		case IRReturn:
			b.movFrameToReg(w, regRAX, fn.valueOffset(instr.X))
			w.WriteBytes([]byte{0x48, 0x89, 0xEC}) // mov rsp, rbp
			w.Write(0x5D)                          // pop rbp
			w.Write(0xC3)                          // ret

		default:
			return nil, codegenErrorf("unsupported IR instruction %d on x86_64", instr.Op)
		}
	}

	return w.Bytes(), nil
}
