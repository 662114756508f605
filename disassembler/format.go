package disassembler

import (
	"fmt"
	"strconv"
)

// Render formats an instruction as "<mnemonic> <destination>, <source>".
// Immediates print as their unsigned decimal value.
func Render(inst Instruction) string {
	return render(inst, false)
}

// RenderNasm formats an instruction so nasm assembles it back to the same
// bytes. Immediates are signed in their own width, and an immediate stored
// to memory carries a byte or word keyword since no operand names the size.
func RenderNasm(inst Instruction) string {
	return render(inst, true)
}

func render(inst Instruction, nasm bool) string {
	src := inst.Src.String()
	if nasm && inst.Src.Kind == OperandImmediate {
		src = strconv.Itoa(inst.Src.Immediate.Signed())
		if inst.Dst.Kind == OperandMemory {
			src = sizeKeyword(inst.Src.Immediate.Wide) + " " + src
		}
	}
	return fmt.Sprintf("%s %s, %s", inst.Mnemonic(), inst.Dst, src)
}

func (i Instruction) String() string {
	return Render(i)
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Register.String()
	case OperandMemory:
		return o.Memory.String()
	case OperandImmediate:
		return o.Immediate.String()
	}
	return "?"
}

// String renders [base+disp], or [address] for the direct form.
func (ea EffectiveAddress) String() string {
	if ea.Direct() {
		return fmt.Sprintf("[%d]", ea.Address)
	}
	return "[" + ea.Base.String() + formatDisp(int64(ea.Disp)) + "]"
}

func (im Immediate) String() string {
	return strconv.FormatUint(uint64(im.Value), 10)
}

func sizeKeyword(wide bool) string {
	if wide {
		return "word"
	}
	return "byte"
}
