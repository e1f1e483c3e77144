// ir.go - linear intermediate representation
//
// The IR is an append-only list of instructions inside a single function.
// Each value-producing instruction defines one immutable value; the value's
// identity is its index, so the form is single-assignment by construction.
// Mutable variables live in storage slots: fixed 8-byte locations addressed
// by slot index. Loads and stores reference slot indices, never pointers.
package main

// Value identifies the result of a value-producing instruction.
type Value int

// Slot identifies an 8-byte storage slot in the function frame.
type Slot int

type IROp int

const (
	IRIconst    IROp = iota // materialize Imm, defines Result
	IRSlotLoad              // load from Slot, defines Result
	IRSlotStore             // store X into Slot
	IRAdd                   // X + Y, defines Result
	IRSub                   // X - Y, defines Result
	IRMul                   // X * Y, defines Result
	IRSDiv                  // X / Y signed, defines Result
	IRReturn                // return X
)

type Instr struct {
	Op     IROp
	Imm    int64
	Slot   Slot
	X, Y   Value
	Result Value // -1 for instructions that define no value
}

// Function is one compiled function: a single straight-line entry block.
// It is sealed by Return; no further instructions may be appended after it.
type Function struct {
	Name      string
	Instrs    []Instr
	numValues int
	numSlots  int
	sealed    bool
}

func NewFunction(name string) *Function {
	return &Function{Name: name}
}

func (f *Function) defineValue(instr Instr) Value {
	result := Value(f.numValues)
	instr.Result = result
	f.Instrs = append(f.Instrs, instr)
	f.numValues++
	return result
}

// Iconst materializes a 64-bit integer constant.
func (f *Function) Iconst(value int64) Value {
	return f.defineValue(Instr{Op: IRIconst, Imm: value})
}

// NewStackSlot allocates a fresh 8-byte storage slot.
func (f *Function) NewStackSlot() Slot {
	slot := Slot(f.numSlots)
	f.numSlots++
	return slot
}

// SlotLoad loads the current contents of a storage slot.
func (f *Function) SlotLoad(slot Slot) Value {
	return f.defineValue(Instr{Op: IRSlotLoad, Slot: slot})
}

// SlotStore stores a value into a storage slot.
func (f *Function) SlotStore(slot Slot, value Value) {
	f.Instrs = append(f.Instrs, Instr{Op: IRSlotStore, Slot: slot, X: value, Result: -1})
}

// Binary appends an integer add/sub/mul/signed-div instruction. The operands
// must already be defined; lowering evaluates left before right.
func (f *Function) Binary(op BinaryOp, x, y Value) Value {
	var irop IROp
	switch op {
	case OpAdd:
		irop = IRAdd
	case OpSubtract:
		irop = IRSub
	case OpMultiply:
		irop = IRMul
	case OpDivide:
		irop = IRSDiv
	}
	return f.defineValue(Instr{Op: irop, X: x, Y: y})
}

// Return ends the function and seals its single block.
func (f *Function) Return(value Value) {
	f.Instrs = append(f.Instrs, Instr{Op: IRReturn, X: value, Result: -1})
	f.sealed = true
}

// Sealed reports whether Return has been emitted.
func (f *Function) Sealed() bool {
	return f.sealed
}

// NumValues returns how many values the function defines.
func (f *Function) NumValues() int {
	return f.numValues
}

// NumSlots returns how many storage slots the function uses.
func (f *Function) NumSlots() int {
	return f.numSlots
}

// FrameSize returns the frame bytes needed to spill every value and hold
// every storage slot, rounded up to 16-byte stack alignment.
func (f *Function) FrameSize() int {
	size := 8 * (f.numValues + f.numSlots)
	return (size + 15) &^ 15
}

// valueOffset and slotOffset define the frame layout shared by the
// backends: values first, then storage slots, 8 bytes each.
func (f *Function) valueOffset(v Value) int {
	return 8 * int(v)
}

func (f *Function) slotOffset(s Slot) int {
	return 8 * (f.numValues + int(s))
}
