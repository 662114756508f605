package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// parseMemory reads the inside of [...]: registers and constants joined
// with + or -.
func parseMemory(expr string, asm *Assembler) (Operand, error) {
	var regs []cpu.Register
	var disp int64

	for _, term := range splitTerms(expr) {
		body := strings.TrimSpace(term[1:])
		if r, ok := cpu.LookupRegister(body); ok {
			if term[0] == '-' {
				return Operand{}, fmt.Errorf("register %s cannot be subtracted", body)
			}
			regs = append(regs, r)
			continue
		}
		v, err := parseConstant(body, asm)
		if err != nil {
			return Operand{}, err
		}
		if term[0] == '-' {
			v = -v
		}
		disp += v
	}

	if len(regs) == 0 {
		if _, err := toWord(disp); err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandMemory, Base: cpu.BaseDirect, Disp: disp & 0xFFFF}, nil
	}

	base, ok := cpu.LookupBase(regs)
	if !ok {
		return Operand{}, fmt.Errorf("no addressing form for registers %v", regs)
	}
	if _, err := toWord(disp); err != nil {
		return Operand{}, err
	}
	return Operand{Kind: OperandMemory, Base: base, Disp: disp}, nil
}

// splitTerms returns each term prefixed by its sign.
func splitTerms(expr string) []string {
	expr = strings.TrimSpace(expr)
	var terms []string
	sign := byte('+')
	start := 0
	for i := 0; i < len(expr); i++ {
		if (expr[i] == '+' || expr[i] == '-') && strings.TrimSpace(expr[start:i]) != "" {
			terms = append(terms, string(sign)+expr[start:i])
			sign, start = expr[i], i+1
		} else if expr[i] == '+' || expr[i] == '-' {
			if expr[i] == '-' {
				sign = flip(sign)
			}
			start = i + 1
		}
	}
	return append(terms, string(sign)+expr[start:])
}

func flip(sign byte) byte {
	if sign == '-' {
		return '+'
	}
	return '-'
}

// encodeModRM builds the mode byte and displacement for a memory or
// register operand, with reg in bits 5-3.
func encodeModRM(op Operand, reg uint8) []byte {
	reg = (reg & 7) << 3

	if op.Kind == OperandRegister {
		return []byte{byte(cpu.ModeRegister)<<6 | reg | op.Register.Code()}
	}

	rm := op.Base.RM()
	if op.Base == cpu.BaseDirect {
		return append([]byte{byte(cpu.ModeMemory)<<6 | reg | rm}, cpu.WordBytes(uint16(op.Disp))...)
	}

	switch {
	// [bp] has no zero-displacement form; 110 with mod 00 is the direct address.
	case op.Disp == 0 && op.Base != cpu.BaseBP:
		return []byte{byte(cpu.ModeMemory)<<6 | reg | rm}
	case fitsInt8(op.Disp):
		return []byte{byte(cpu.ModeMemory8)<<6 | reg | rm, byte(op.Disp)}
	}
	return append([]byte{byte(cpu.ModeMemory16)<<6 | reg | rm}, cpu.WordBytes(uint16(op.Disp))...)
}
