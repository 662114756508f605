package disassembler

import (
	"github.com/Urethramancer/i8086/cpu"
)

// OperandKind tags which field of an Operand is meaningful.
type OperandKind int

const (
	// OperandNone is the zero value and never appears in a decoded instruction.
	OperandNone OperandKind = iota
	// OperandRegister is a register operand.
	OperandRegister
	// OperandMemory is an effective address.
	OperandMemory
	// OperandImmediate is a constant from the instruction stream.
	OperandImmediate
)

// EffectiveAddress is a memory operand. Either Base names one or two
// registers with an optional displacement, or Base is cpu.BaseDirect and
// Address holds the 16-bit location.
type EffectiveAddress struct {
	Base cpu.Base
	// Disp is the sign-extended displacement; DispBytes is how many bytes
	// encoded it (0, 1 or 2).
	Disp      int16
	DispBytes int
	Address   uint16
}

// Direct reports whether the address is a bare 16-bit location.
func (ea EffectiveAddress) Direct() bool {
	return ea.Base == cpu.BaseDirect
}

// Immediate is an 8 or 16-bit constant assembled little-endian.
type Immediate struct {
	Value uint16
	Wide  bool
}

// Signed interprets the value in its own width.
func (im Immediate) Signed() int {
	if im.Wide {
		return int(int16(im.Value))
	}
	return int(int8(uint8(im.Value)))
}

// Operand is one of a register, a memory reference or an immediate.
// Only the field named by Kind is meaningful.
type Operand struct {
	Kind      OperandKind
	Register  cpu.Register
	Memory    EffectiveAddress
	Immediate Immediate
}

// RegisterOperand wraps r.
func RegisterOperand(r cpu.Register) Operand {
	return Operand{Kind: OperandRegister, Register: r}
}

// MemoryOperand wraps ea.
func MemoryOperand(ea EffectiveAddress) Operand {
	return Operand{Kind: OperandMemory, Memory: ea}
}

// ImmediateOperand wraps an immediate of the given width.
func ImmediateOperand(v uint16, wide bool) Operand {
	if !wide {
		v &= 0xFF
	}
	return Operand{Kind: OperandImmediate, Immediate: Immediate{Value: v, Wide: wide}}
}

// Instruction is a fully decoded instruction.
type Instruction struct {
	Op       cpu.Op
	Encoding cpu.Encoding
	Dst      Operand
	Src      Operand
	// Offset is the position of the first byte in the input; Size is the
	// number of bytes the encoding used.
	Offset int
	Size   int
}

// Mnemonic returns the assembler mnemonic.
func (i Instruction) Mnemonic() string {
	return i.Op.Mnemonic()
}

// Wide reports whether the instruction moves a word.
func (i Instruction) Wide() bool {
	for _, o := range []Operand{i.Dst, i.Src} {
		switch o.Kind {
		case OperandRegister:
			return o.Register.Wide()
		case OperandImmediate:
			return o.Immediate.Wide
		}
	}
	return false
}
