package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// assembleMove picks the shortest MOV encoding for dst, src.
func assembleMove(operands []Operand) ([]byte, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("MOV requires 2 operands")
	}
	dst, src := operands[0], operands[1]

	if dst.IsImmediate() {
		return nil, fmt.Errorf("destination of MOV cannot be an immediate")
	}
	if dst.Kind == OperandMemory && src.Kind == OperandMemory {
		return nil, fmt.Errorf("MOV cannot move memory to memory")
	}

	wide, err := operandWidth(dst, src)
	if err != nil {
		return nil, err
	}
	w := byte(0)
	if wide {
		w = cpu.OPMOVWide
	}

	switch {
	// --- immediate to register ---
	case dst.Kind == OperandRegister && src.IsImmediate():
		opcode := byte(cpu.OPMOVImmToReg) | dst.Register.Code()
		if wide {
			opcode |= cpu.OPMOVImmWide
		}
		data, err := immediateBytes(src.Value, wide)
		if err != nil {
			return nil, err
		}
		return append([]byte{opcode}, data...), nil

	// --- immediate to memory ---
	case src.IsImmediate():
		data, err := immediateBytes(src.Value, wide)
		if err != nil {
			return nil, err
		}
		code := append([]byte{cpu.OPMOVImmToRM | w}, encodeModRM(dst, 0)...)
		return append(code, data...), nil

	// --- accumulator forms ---
	case dst.Kind == OperandRegister && dst.Register.Code() == 0 && src.IsDirect():
		return append([]byte{cpu.OPMOVMemToAcc | w}, cpu.WordBytes(uint16(src.Disp))...), nil
	case src.Kind == OperandRegister && src.Register.Code() == 0 && dst.IsDirect():
		return append([]byte{cpu.OPMOVAccToMem | w}, cpu.WordBytes(uint16(dst.Disp))...), nil

	// --- memory to register (d=1) ---
	case src.Kind == OperandMemory:
		opcode := byte(cpu.OPMOVRegToRM) | cpu.OPMOVDirection | w
		return append([]byte{opcode}, encodeModRM(src, dst.Register.Code())...), nil
	}

	// --- register to register/memory (d=0) ---
	opcode := byte(cpu.OPMOVRegToRM) | w
	return append([]byte{opcode}, encodeModRM(dst, src.Register.Code())...), nil
}

// operandWidth works out w from the registers and size keywords present.
func operandWidth(dst, src Operand) (bool, error) {
	size := SizeNone
	for _, op := range []Operand{dst, src} {
		var s Size
		switch {
		case op.Kind == OperandRegister && op.Register.Wide():
			s = SizeWord
		case op.Kind == OperandRegister:
			s = SizeByte
		default:
			s = op.Size
		}
		if s == SizeNone {
			continue
		}
		if size != SizeNone && size != s {
			return false, fmt.Errorf("operand size mismatch between %s and %s", dst.Raw, src.Raw)
		}
		size = s
	}
	if size == SizeNone {
		return false, fmt.Errorf("operation size not specified for %s, %s", dst.Raw, src.Raw)
	}
	return size == SizeWord, nil
}

func immediateBytes(v int64, wide bool) ([]byte, error) {
	if wide {
		w, err := toWord(v)
		if err != nil {
			return nil, err
		}
		return cpu.WordBytes(w), nil
	}
	b, err := toByte(v)
	if err != nil {
		return nil, err
	}
	return []byte{b}, nil
}
