package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// OperandKind says how an operand was written.
type OperandKind int

const (
	// OperandRegister is a bare register name.
	OperandRegister OperandKind = iota
	// OperandMemory is a bracketed address.
	OperandMemory
	// OperandImmediate is a constant.
	OperandImmediate
)

// Size is an explicit byte or word keyword on an operand.
type Size int

const (
	// SizeNone means no keyword was given.
	SizeNone Size = iota
	SizeByte
	SizeWord
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind     OperandKind
	Register cpu.Register
	Base     cpu.Base
	// Disp is the displacement for based forms and the address for
	// cpu.BaseDirect.
	Disp  int64
	Value int64
	Size  Size
	Raw   string
}

// IsImmediate returns true if this operand is an immediate constant.
func (o *Operand) IsImmediate() bool {
	return o.Kind == OperandImmediate
}

// IsDirect reports whether o is a bare address, the only
// memory form the accumulator encodings take.
func (o *Operand) IsDirect() bool {
	return o.Kind == OperandMemory && o.Base == cpu.BaseDirect
}

var (
	reSized    = regexp.MustCompile(`(?i)^(byte|word)(\s+ptr)?\s+(.+)$`)
	reMemory   = regexp.MustCompile(`^\[(.+)\]$`)
	reRegister = regexp.MustCompile(`(?i)^[a-d][lhx]$|^[sb]p$|^[sd]i$`)
)

// parseOperand converts an operand string into a structured Operand.
func parseOperand(s string, asm *Assembler) (Operand, error) {
	s = strings.TrimSpace(s)
	raw := s

	size := SizeNone
	if m := reSized.FindStringSubmatch(s); m != nil {
		if strings.EqualFold(m[1], "byte") {
			size = SizeByte
		} else {
			size = SizeWord
		}
		s = strings.TrimSpace(m[3])
	}

	if reRegister.MatchString(s) {
		r, ok := cpu.LookupRegister(s)
		if !ok {
			return Operand{}, fmt.Errorf("unknown register: %s", s)
		}
		if size != SizeNone {
			return Operand{}, fmt.Errorf("size keyword not allowed on register %s", s)
		}
		return Operand{Kind: OperandRegister, Register: r, Raw: raw}, nil
	}

	if m := reMemory.FindStringSubmatch(s); m != nil {
		op, err := parseMemory(m[1], asm)
		if err != nil {
			return Operand{}, fmt.Errorf("%s: %w", raw, err)
		}
		op.Size, op.Raw = size, raw
		return op, nil
	}

	v, err := parseConstant(s, asm)
	if err != nil {
		return Operand{}, fmt.Errorf("unknown operand format: %s", raw)
	}
	return Operand{Kind: OperandImmediate, Value: v, Size: size, Raw: raw}, nil
}
